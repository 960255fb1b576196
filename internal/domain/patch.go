package domain

import "time"

// ProductPatch lists the product fields an update writes. Nil fields keep
// their stored value. Backends apply a patch atomically per record.
type ProductPatch struct {
	Name           *string
	Description    *string
	Price          *float64
	Stock          *int
	CategoryID     *string
	BrandID        *string
	ImageURL       *string
	Specifications *Specifications
	Rating         *float64
	UpdatedAt      time.Time
}

// Apply copies the supplied fields onto p.
func (pt ProductPatch) Apply(p *Product) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Stock != nil {
		p.Stock = *pt.Stock
	}
	if pt.CategoryID != nil {
		p.CategoryID = *pt.CategoryID
	}
	if pt.BrandID != nil {
		p.BrandID = *pt.BrandID
	}
	if pt.ImageURL != nil {
		p.ImageURL = *pt.ImageURL
	}
	if pt.Specifications != nil {
		p.Specifications = append(Specifications{}, (*pt.Specifications)...)
	}
	if pt.Rating != nil {
		p.Rating = *pt.Rating
	}
	if !pt.UpdatedAt.IsZero() {
		p.UpdatedAt = pt.UpdatedAt
	}
}

type CategoryPatch struct {
	Name        *string
	Description *string
	Slug        *string
	Logo        *string
	UpdatedAt   time.Time
}

func (pt CategoryPatch) Apply(c *Category) {
	if pt.Name != nil {
		c.Name = *pt.Name
	}
	if pt.Description != nil {
		c.Description = *pt.Description
	}
	if pt.Slug != nil {
		c.Slug = *pt.Slug
	}
	if pt.Logo != nil {
		c.Logo = *pt.Logo
	}
	if !pt.UpdatedAt.IsZero() {
		c.UpdatedAt = pt.UpdatedAt
	}
}

type BrandPatch struct {
	Name      *string
	Country   *string
	Website   *string
	Logo      *string
	UpdatedAt time.Time
}

func (pt BrandPatch) Apply(b *Brand) {
	if pt.Name != nil {
		b.Name = *pt.Name
	}
	if pt.Country != nil {
		b.Country = *pt.Country
	}
	if pt.Website != nil {
		b.Website = *pt.Website
	}
	if pt.Logo != nil {
		b.Logo = *pt.Logo
	}
	if !pt.UpdatedAt.IsZero() {
		b.UpdatedAt = pt.UpdatedAt
	}
}
