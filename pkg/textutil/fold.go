// Package textutil normaliza texto para búsquedas insensibles a acentos.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin acentos: "Cosmético" → "cosmetico".
// Si la transformación falla (entrada no UTF-8), devuelve el original en minúsculas.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
