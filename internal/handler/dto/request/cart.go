package request

import (
	"unicart/internal/usecase/commands"
)

const defaultAddQuantity = 1

type AddCartItemRequest struct {
	ID        string            `json:"id" binding:"required,max=128"`
	Name      string            `json:"name" binding:"required,max=256"`
	UnitPrice int64             `json:"unitPrice" binding:"min=0,max=10000000"`
	Quantity  *int              `json:"quantity" binding:"omitempty,min=1,max=999"`
	ImageRef  string            `json:"imageRef" binding:"max=512"`
	Metadata  map[string]string `json:"metadata"`
}

// ToInput defaults a missing quantity to one.
func (r *AddCartItemRequest) ToInput() commands.AddItemInput {
	qty := defaultAddQuantity
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return commands.AddItemInput{
		ID:             r.ID,
		Name:           r.Name,
		UnitPriceCents: r.UnitPrice,
		Quantity:       qty,
		ImageRef:       r.ImageRef,
		Metadata:       r.Metadata,
	}
}
