package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Description   *string   `gorm:"type:varchar(500)"`
	Price         float64   `gorm:"not null"`
	StockQuantity int       `gorm:"not null;default:0"`
	Category      *string   `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName pins the table to the explicit schema.
func (Product) TableName() string { return "products" }

// ProductResponse is the outbound representation of a Product.
type ProductResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      *string   `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts a stored product into its outbound representation.
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToResponses converts a slice of products, never returning nil.
func ToResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse())
	}
	return out
}
