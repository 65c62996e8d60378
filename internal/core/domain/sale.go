package domain

import "time"

// Sale records units sold from a product. Sales are immutable and outlive
// the product they reference.
type Sale struct {
	ID          int64     `json:"id" bson:"_id"`
	ProductID   int64     `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	UnitPrice   float64   `json:"unit_price" bson:"unit_price"`
	Total       float64   `json:"total" bson:"total"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewSale snapshots the product's price at the moment of the sale.
func NewSale(p *Product, qty int, at time.Time) *Sale {
	return &Sale{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.UnitPrice,
		Total:       float64(qty) * p.UnitPrice,
		CreatedAt:   at,
	}
}
