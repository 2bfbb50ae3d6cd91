// Package pdf implementa la representación gráfica de la nota de venta de
// Casa Bella usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Casa Bella  │  N° Venta + Fecha                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto (o "Venta mostrador")           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: Método de pago + leyenda                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appsales "github.com/casabella/casa-bella-api/internal/application/sales"
	"github.com/casabella/casa-bella-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 60, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de método de pago.
var paymentLabels = map[string]string{
	entity.PaymentEfectivo:      "Efectivo",
	entity.PaymentTarjeta:       "Tarjeta",
	entity.PaymentTransferencia: "Transferencia",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.SalePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSalePDF genera el PDF de la venta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalePDF(
	_ context.Context,
	sale *entity.Sale,
	customer *entity.User,
	payment *entity.Payment,
	lines []appsales.SaleLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Venta Casa Bella", true).
		WithAuthor("Casa Bella", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(payment) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y N° de venta + fecha (der).
func headerRow(sale *entity.Sale) core.Row {
	fecha := sale.Date.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Casa Bella", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Belleza y joyería", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("NOTA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente o leyenda de mostrador.
func clienteRow(customer *entity.User) core.Row {
	name := "Venta mostrador"
	contact := ""
	if customer != nil {
		name = customer.Name
		contact = fmt.Sprintf("Email: %s   |   Tel: %s",
			nonEmpty(customer.Email, "—"),
			nonEmpty(customer.Phone, "—"),
		)
	}
	cols := []core.Component{
		text.New("CLIENTE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	}
	if contact != "" {
		cols = append(cols, text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}))
	}
	return row.New(14).Add(col.New(12).Add(cols...))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de venta.
func tableLineRows(lines []appsales.SaleLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.UnitPrice.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.LineTotal.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(sale.Subtotal.StringFixed(2))),
			value("$"+formatMoney(sale.Tax.StringFixed(2))),
			grandValue("$"+formatMoney(sale.Total.StringFixed(2))),
		),
		col.New(3),
	)
}

// footerRows: método de pago + leyenda de agradecimiento.
func footerRows(payment *entity.Payment) []core.Row {
	rows := []core.Row{}
	if payment != nil {
		method := paymentLabels[payment.Method]
		if method == "" {
			method = payment.Method
		}
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Pago: "+method+"  ($"+formatMoney(payment.Amount.StringFixed(2))+")", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Gracias por tu compra en Casa Bella. Conserva esta nota como comprobante.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta comas de miles en un string numérico con 2 decimales.
// Ej: "25000.00" → "25,000.00"
func formatMoney(s string) string {
	intPart := s
	frac := ""
	for i, c := range s {
		if c == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	n := len(intPart)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3+len(frac))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, intPart[i])
	}
	return string(buf) + frac
}
