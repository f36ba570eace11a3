package member

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID               uuid.UUID  `json:"id"`
	MemberCode       string     `json:"memberCode"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            *string    `json:"email,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string    `json:"emergencyPhone,omitempty"`
	Photo            *string    `json:"photo,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Summary is the trimmed shape embedded in attendance and sale responses.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
}
