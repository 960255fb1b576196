package domain

import "time"

// Product represents a product in the catalog
type Product struct {
	ID             string         `json:"id"`
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Price          float64        `json:"price" validate:"gte=0"`
	Stock          int            `json:"stock" validate:"gte=0"`
	CategoryID     string         `json:"categoryId" validate:"required"`
	BrandID        string         `json:"brandId" validate:"required"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	Specifications Specifications `json:"specifications"`
	Rating         float64        `json:"rating" validate:"gte=0,lte=5"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Category represents a product category
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug" validate:"required"`
	Logo        string    `json:"logo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Brand represents a product brand
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Country   string    `json:"country,omitempty"`
	Website   string    `json:"website,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch stamps the record timestamps. CreatedAt is only set once.
func (p *Product) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (c *Category) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (b *Brand) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Value is the stock value of the product (price times units in stock).
func (p *Product) Value() float64 {
	return p.Price * float64(p.Stock)
}
