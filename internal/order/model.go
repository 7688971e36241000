package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

type Order struct {
	ID          uint        `json:"id"`
	OrderNumber string      `json:"order_number"`
	UserID      uint        `json:"user_id"`
	TotalPrice  int64       `json:"total_price"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	ID           uint   `json:"id"`
	OrderID      uint   `json:"order_id"`
	ProductID    uint   `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
}
