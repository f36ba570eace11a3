package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/attendance"
)

func attendanceLogsQueryFor(memberID uuid.UUID) attendance.LogsQuery {
	return attendance.LogsQuery{MemberID: &memberID, Page: 1, Limit: 10}
}

// TestCheckInCheckOutFlow walks the full lifecycle against a real database:
// check in, conflict on the second attempt, check out, 404 on the second
// check-out, with the visit counter decremented exactly once.
func TestCheckInCheckOutFlow(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewAttendanceService(pool, testLogger())
	ctx := context.Background()

	remaining := 3
	memberID := createTestMember(t, pool, true)
	planID := createTestPlan(t, pool, &remaining)
	subID := createTestSubscription(t, pool, memberID, planID, time.Now().Add(24*time.Hour), &remaining)

	t.Log("Step 1: first check-in succeeds and decrements remaining visits")
	resp, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.CheckIn.CheckOutTime)
	require.NotNil(t, resp.Subscription.RemainingVisits)
	assert.Equal(t, 2, *resp.Subscription.RemainingVisits)

	var dbRemaining int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT remaining_visits FROM member_subscriptions WHERE id = $1`, subID,
	).Scan(&dbRemaining))
	assert.Equal(t, 2, dbRemaining)

	t.Log("Step 2: second check-in conflicts while the first is open")
	_, err = svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
	require.Error(t, err)
	e := apperr.From(err)
	assert.Equal(t, http.StatusConflict, e.Status())

	t.Log("Step 3: check-out closes the record")
	rec, err := svc.CheckOut(ctx, resp.CheckIn.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOutTime)

	t.Log("Step 4: second check-out is a 404")
	_, err = svc.CheckOut(ctx, resp.CheckIn.ID, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.From(err).Status())
}

func TestCheckInRejections(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewAttendanceService(pool, testLogger())
	ctx := context.Background()

	t.Run("unknown member", func(t *testing.T) {
		unknown := uuid.New()
		_, err := svc.CheckIn(ctx, CheckInInput{MemberID: &unknown})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.From(err).Status())
	})

	t.Run("inactive member", func(t *testing.T) {
		memberID := createTestMember(t, pool, false)
		_, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, http.StatusForbidden, e.Status())
		assert.Equal(t, "member account is inactive", e.Message)
	})

	t.Run("no subscription", func(t *testing.T) {
		memberID := createTestMember(t, pool, true)
		_, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
		require.Error(t, err)
		assert.Equal(t, "no active membership found", apperr.From(err).Message)
	})

	t.Run("expired subscription with active status", func(t *testing.T) {
		memberID := createTestMember(t, pool, true)
		planID := createTestPlan(t, pool, nil)
		createTestSubscription(t, pool, memberID, planID, time.Now().Add(-time.Hour), nil)

		_, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
		require.Error(t, err)
		assert.Equal(t, "membership has expired", apperr.From(err).Message)
	})

	t.Run("exhausted visits", func(t *testing.T) {
		memberID := createTestMember(t, pool, true)
		zero := 0
		planID := createTestPlan(t, pool, &zero)
		createTestSubscription(t, pool, memberID, planID, time.Now().Add(24*time.Hour), &zero)

		_, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
		require.Error(t, err)
		assert.Equal(t, "no remaining visits", apperr.From(err).Message)
	})
}

func TestCheckInByMemberCode(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewAttendanceService(pool, testLogger())
	ctx := context.Background()

	memberID := createTestMember(t, pool, true)
	planID := createTestPlan(t, pool, nil)
	createTestSubscription(t, pool, memberID, planID, time.Now().Add(24*time.Hour), nil)

	var code string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT member_code FROM members WHERE id = $1`, memberID).Scan(&code))

	resp, err := svc.CheckIn(ctx, CheckInInput{MemberCode: code})
	require.NoError(t, err)
	assert.Equal(t, memberID, resp.Member.ID)
}

// The selection rule: among multiple active rows, the latest end date
// authorizes entry even when an earlier one is already expired.
func TestAuthorizingSubscriptionPicksLatestEndDate(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewAttendanceService(pool, testLogger())
	ctx := context.Background()

	memberID := createTestMember(t, pool, true)
	planID := createTestPlan(t, pool, nil)
	createTestSubscription(t, pool, memberID, planID, time.Now().Add(-48*time.Hour), nil)
	newest := createTestSubscription(t, pool, memberID, planID, time.Now().Add(72*time.Hour), nil)

	resp, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
	require.NoError(t, err)
	assert.Equal(t, newest, resp.Subscription.ID)
}

func TestLogsPaginationAndOpenList(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewAttendanceService(pool, testLogger())
	ctx := context.Background()

	memberID := createTestMember(t, pool, true)
	planID := createTestPlan(t, pool, nil)
	createTestSubscription(t, pool, memberID, planID, time.Now().Add(24*time.Hour), nil)

	resp, err := svc.CheckIn(ctx, CheckInInput{MemberID: &memberID})
	require.NoError(t, err)

	logs, err := svc.Logs(ctx, attendanceLogsQueryFor(memberID))
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	assert.Equal(t, resp.CheckIn.ID, logs.Data[0].ID)
	assert.GreaterOrEqual(t, len(logs.CurrentlyCheckedIn), 1)

	_, err = svc.CheckOut(ctx, resp.CheckIn.ID, nil)
	require.NoError(t, err)

	logs, err = svc.Logs(ctx, attendanceLogsQueryFor(memberID))
	require.NoError(t, err)
	require.Len(t, logs.Data, 1)
	assert.NotNil(t, logs.Data[0].CheckOutTime)
}
