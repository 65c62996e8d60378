package domain

import "time"

// Product is a catalog entry. ID is assigned on creation and never changes.
type Product struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"product_name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	UnitPrice float64   `json:"unit_price" bson:"unit_price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasStock reports whether qty units can be taken from the product.
func (p *Product) HasStock(qty int) bool {
	return qty > 0 && p.Quantity >= qty
}
