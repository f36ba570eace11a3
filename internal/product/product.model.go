package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Category      string    `json:"category"`
	SKU           string    `json:"sku"`
	Price         float64   `json:"price"`
	Cost          *float64  `json:"cost,omitempty"`
	StockQuantity int       `json:"stockQuantity"`
	MinStockLevel int       `json:"minStockLevel"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	IsActive      bool      `json:"isActive"`
	IsLowStock    bool      `json:"isLowStock"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category" validate:"required,max=100"`
	SKU           string   `json:"sku" validate:"required,max=100"`
	Price         float64  `json:"price" validate:"gte=0"`
	Cost          *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	StockQuantity int      `json:"stockQuantity" validate:"gte=0"`
	MinStockLevel int      `json:"minStockLevel" validate:"gte=0"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	SKU           *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Cost          *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int     `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *int     `json:"minStockLevel,omitempty" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type ListProductsQuery struct {
	Search   string
	Category string
	LowStock bool
	IsActive *bool
	Page     int
	Limit    int
}
