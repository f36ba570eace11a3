package plan

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DurationDays int       `json:"durationDays"`
	Price        float64   `json:"price"`
	MaxVisits    *int      `json:"maxVisits,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreatePlanRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description,omitempty"`
	DurationDays int     `json:"durationDays" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"gte=0"`
	MaxVisits    *int    `json:"maxVisits,omitempty" validate:"omitempty,gt=0"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description  *string  `json:"description,omitempty"`
	DurationDays *int     `json:"durationDays,omitempty" validate:"omitempty,gt=0"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	MaxVisits    *int     `json:"maxVisits,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool    `json:"isActive,omitempty"`
}
