package product

import "time"

type Product struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Thumbnail   string    `json:"thumbnail"`
	Price       int64     `json:"price"`
	Discount    int64     `json:"discount"`
	Unit        string    `json:"unit"`
	Stock       int       `json:"stock"`
	IsFeatured  bool      `json:"is_featured"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// SoldOut reports whether the product can still be added to a cart.
func (p *Product) SoldOut() bool {
	return p.Stock <= 0
}

// FinalPrice is the list price after discount.
func (p *Product) FinalPrice() int64 {
	price := p.Price - p.Discount
	if price < 0 {
		return 0
	}
	return price
}
