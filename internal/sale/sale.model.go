package sale

import (
	"time"

	"github.com/google/uuid"
)

// Payment status values mirror the payment_status enum in the database.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

type Sale struct {
	ID             uuid.UUID  `json:"id"`
	SaleNumber     string     `json:"saleNumber"`
	MemberID       *uuid.UUID `json:"memberId,omitempty"`
	TotalAmount    float64    `json:"totalAmount"`
	DiscountAmount float64    `json:"discountAmount"`
	FinalAmount    float64    `json:"finalAmount"`
	PaymentMethod  string     `json:"paymentMethod"`
	PaymentStatus  string     `json:"paymentStatus"`
	StaffID        *string    `json:"staffId,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Items          []Item     `json:"items"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Item struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	ProductSKU  string    `json:"productSku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
}

type CreateSaleRequest struct {
	MemberID       string            `json:"memberId,omitempty" validate:"omitempty,uuid"`
	DiscountAmount float64           `json:"discountAmount" validate:"gte=0"`
	PaymentMethod  string            `json:"paymentMethod" validate:"required,oneof=cash card transfer"`
	PaymentStatus  string            `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending completed failed refunded"`
	Notes          string            `json:"notes,omitempty"`
	Items          []CreateItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateItemInput struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type ListSalesQuery struct {
	Date   *time.Time
	Status string
	Page   int
	Limit  int
}
