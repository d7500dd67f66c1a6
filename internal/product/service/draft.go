package service

import "github.com/abgdnv/productdash/internal/product/model"

// Draft is a product being filled in on the add form. It has no ID and is
// never part of the collection until committed.
type Draft struct {
	Name  string            `json:"name"`
	Price model.NumericText `json:"price"`
	Stock model.NumericText `json:"stock"`
	Type  model.ProductType `json:"type" validate:"omitempty,producttype"`
}

// DefaultDraft is the empty add form.
func DefaultDraft() Draft {
	return Draft{Price: "0", Stock: "0"}
}

// DraftPatch carries add-form field edits. Nil fields are left unchanged.
type DraftPatch struct {
	Name  *string            `json:"name"`
	Price *model.NumericText `json:"price"`
	Stock *model.NumericText `json:"stock"`
	Type  *model.ProductType `json:"type" validate:"omitempty,producttype"`
}

func (p DraftPatch) applyTo(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Stock != nil {
		d.Stock = *p.Stock
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	return d
}
