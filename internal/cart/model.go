package cart

import (
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/product"
)

type CartItem struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *product.Product `json:"product,omitempty"`
}

// TotalPrice is quantity times the discounted unit price.
func (i *CartItem) TotalPrice() int64 {
	if i.Product == nil {
		return 0
	}
	return int64(i.Quantity) * i.Product.FinalPrice()
}

type AddParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type UpdateParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}
