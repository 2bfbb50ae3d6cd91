package entity

import "github.com/casabella/casa-bella-api/internal/domain"

// Tipos de ítem vendible.
const (
	ItemProducto = "producto"
	ItemServicio = "servicio"
)

// ItemRef referencia etiquetada a un producto o a un servicio, decidida una sola
// vez en la frontera HTTP. Reemplaza el branching por id suelto del sistema anterior.
type ItemRef struct {
	Kind string
	ID   string
}

// ProductRef construye la referencia a un producto.
func ProductRef(id string) ItemRef { return ItemRef{Kind: ItemProducto, ID: id} }

// ServiceRef construye la referencia a un servicio.
func ServiceRef(id string) ItemRef { return ItemRef{Kind: ItemServicio, ID: id} }

// Validate verifica que la referencia esté completa y el tipo sea reconocido.
func (r ItemRef) Validate() error {
	if r.ID == "" {
		return domain.ErrInvalidInput
	}
	if r.Kind != ItemProducto && r.Kind != ItemServicio {
		return domain.ErrInvalidInput
	}
	return nil
}

// IsProduct indica si la referencia apunta a un producto.
func (r ItemRef) IsProduct() bool { return r.Kind == ItemProducto }
