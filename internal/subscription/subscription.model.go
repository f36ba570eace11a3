package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status values mirror the membership_status enum in the database.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

type Subscription struct {
	ID              uuid.UUID `json:"id"`
	MemberID        uuid.UUID `json:"memberId"`
	PlanID          uuid.UUID `json:"planId"`
	PlanName        string    `json:"planName"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Status          string    `json:"status"`
	RemainingVisits *int      `json:"remainingVisits,omitempty"`
	Price           float64   `json:"price"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AssignPlanRequest struct {
	PlanID    string `json:"planId" validate:"required,uuid"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes,omitempty"`
}

// Summary is the authorizing-subscription shape embedded in check-in responses.
type Summary struct {
	ID              uuid.UUID `json:"id"`
	PlanName        string    `json:"planName"`
	Status          string    `json:"status"`
	EndDate         time.Time `json:"endDate"`
	RemainingVisits *int      `json:"remainingVisits,omitempty"`
}
