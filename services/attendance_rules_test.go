package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/internal/attendance"
	"gymDeskAPI/internal/subscription"
)

func activeMember() checkInMember {
	m := checkInMember{}
	m.ID = uuid.New()
	m.FirstName = "Jordan"
	m.LastName = "Reyes"
	m.IsActive = true
	return m
}

func validSub(endDate time.Time, remaining *int) *subscription.Summary {
	return &subscription.Summary{
		ID:              uuid.New(),
		PlanName:        "Monthly Unlimited",
		Status:          subscription.StatusActive,
		EndDate:         endDate,
		RemainingVisits: remaining,
	}
}

func TestCheckInGateOrdering(t *testing.T) {
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	zero := 0
	open := &attendance.Record{ID: uuid.New(), CheckInTime: now.Add(-time.Hour)}

	t.Run("inactive member fails regardless of subscription state", func(t *testing.T) {
		m := activeMember()
		m.IsActive = false

		err := checkInGate(m, validSub(tomorrow, nil), open, now)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusForbidden, err.Status())
		assert.Equal(t, "member account is inactive", err.Message)
	})

	t.Run("no active subscription", func(t *testing.T) {
		err := checkInGate(activeMember(), nil, nil, now)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusForbidden, err.Status())
		assert.Equal(t, "no active membership found", err.Message)
	})

	t.Run("active status does not override an expired end date", func(t *testing.T) {
		err := checkInGate(activeMember(), validSub(yesterday, nil), nil, now)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusForbidden, err.Status())
		assert.Equal(t, "membership has expired", err.Message)
	})

	t.Run("exhausted visit cap", func(t *testing.T) {
		err := checkInGate(activeMember(), validSub(tomorrow, &zero), nil, now)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusForbidden, err.Status())
		assert.Equal(t, "no remaining visits", err.Message)
	})

	t.Run("open record conflicts and surfaces its check-in time", func(t *testing.T) {
		err := checkInGate(activeMember(), validSub(tomorrow, nil), open, now)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusConflict, err.Status())

		details, ok := err.Details.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, open.CheckInTime, details["checkInTime"])
	})

	t.Run("expiry outranks visit cap and open record", func(t *testing.T) {
		err := checkInGate(activeMember(), validSub(yesterday, &zero), open, now)
		require.NotNil(t, err)
		assert.Equal(t, "membership has expired", err.Message)
	})

	t.Run("one remaining visit passes", func(t *testing.T) {
		one := 1
		assert.Nil(t, checkInGate(activeMember(), validSub(tomorrow, &one), nil, now))
	})

	t.Run("uncapped subscription passes", func(t *testing.T) {
		assert.Nil(t, checkInGate(activeMember(), validSub(tomorrow, nil), nil, now))
	})
}

func TestCheckInGateEndDateBoundary(t *testing.T) {
	now := time.Now()

	// An end date exactly at "now" still authorizes entry; only a strictly
	// earlier end date is expired.
	assert.Nil(t, checkInGate(activeMember(), validSub(now, nil), nil, now))
}
