package attendance

import (
	"time"

	"github.com/google/uuid"

	"gymDeskAPI/internal/member"
	"gymDeskAPI/internal/pagination"
	"gymDeskAPI/internal/subscription"
)

// Record is one attendance session. A nil CheckOutTime means the member is
// currently in the gym; setting it closes the record for good.
type Record struct {
	ID           uuid.UUID  `json:"id"`
	MemberID     uuid.UUID  `json:"memberId"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	ProcessedBy  *string    `json:"processedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RecordWithMember joins the member summary in for list views.
type RecordWithMember struct {
	Record
	Member member.Summary `json:"member"`
}

type CheckInRequest struct {
	// Exactly one of MemberCode (the QR payload) or MemberID is required.
	MemberCode string `json:"memberCode,omitempty"`
	MemberID   string `json:"memberId,omitempty" validate:"omitempty,uuid"`
	Notes      string `json:"notes,omitempty"`
}

type CheckOutRequest struct {
	CheckInID string `json:"checkInId" validate:"required,uuid"`
	Notes     string `json:"notes,omitempty"`
}

type CheckInResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Member       member.Summary       `json:"member"`
	Subscription subscription.Summary `json:"subscription"`
	CheckIn      Record               `json:"checkIn"`
}

type LogsQuery struct {
	MemberID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type LogsResponse struct {
	Data               []RecordWithMember    `json:"data"`
	Pagination         pagination.Pagination `json:"pagination"`
	CurrentlyCheckedIn []RecordWithMember    `json:"currentlyCheckedIn"`
}
