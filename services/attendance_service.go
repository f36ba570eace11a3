package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/attendance"
	"gymDeskAPI/internal/member"
	"gymDeskAPI/internal/pagination"
	"gymDeskAPI/internal/subscription"
)

// openRecordsCap bounds the "currently checked in" list on long-lived installs.
const openRecordsCap = 50

type AttendanceService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewAttendanceService(db *pgxpool.Pool, log *slog.Logger) *AttendanceService {
	return &AttendanceService{db: db, log: log}
}

type CheckInInput struct {
	MemberCode  string
	MemberID    *uuid.UUID
	ProcessedBy *string
	Notes       *string
}

type checkInMember struct {
	member.Summary
	IsActive bool
}

// checkInGate evaluates the ordered precondition chain for a resolved member.
// The first violated rule wins; callers rely on exactly this order.
func checkInGate(m checkInMember, sub *subscription.Summary, open *attendance.Record, now time.Time) *apperr.Error {
	if !m.IsActive {
		return apperr.Forbidden("member account is inactive")
	}
	if sub == nil {
		return apperr.Forbidden("no active membership found")
	}
	// The status column is not trusted to track time: an 'active' row can
	// still be past its end date.
	if sub.EndDate.Before(now) {
		return apperr.Forbidden("membership has expired")
	}
	if sub.RemainingVisits != nil && *sub.RemainingVisits <= 0 {
		return apperr.Forbidden("no remaining visits")
	}
	if open != nil {
		return apperr.Conflict("member already checked in", map[string]any{
			"checkInTime": open.CheckInTime,
		})
	}
	return nil
}

// CheckIn validates the member and their authorizing subscription, then inserts
// the attendance record and decrements the visit counter in one transaction.
func (s *AttendanceService) CheckIn(ctx context.Context, in CheckInInput) (*attendance.CheckInResponse, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to process check-in", err)
	}
	defer tx.Rollback(ctx)

	m, err := s.resolveMember(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	sub, err := s.authorizingSubscription(ctx, tx, m.ID)
	if err != nil {
		return nil, err
	}

	open, err := s.openRecord(ctx, tx, m.ID)
	if err != nil {
		return nil, err
	}

	if gateErr := checkInGate(m, sub, open, time.Now()); gateErr != nil {
		return nil, gateErr
	}

	var rec attendance.Record
	rec.MemberID = m.ID
	rec.Notes = in.Notes
	rec.ProcessedBy = in.ProcessedBy
	err = tx.QueryRow(ctx, `
		INSERT INTO attendance_logs (member_id, notes, processed_by)
		VALUES ($1, $2, $3)
		RETURNING id, check_in_time, created_at
	`, m.ID, in.Notes, in.ProcessedBy).Scan(&rec.ID, &rec.CheckInTime, &rec.CreatedAt)
	if err != nil {
		// A concurrent check-in can win the race between our read and this
		// insert; the partial unique index turns that into a clean conflict.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("member already checked in", nil)
		}
		return nil, apperr.Internal("failed to create check-in", err)
	}

	if sub.RemainingVisits != nil {
		var remaining int
		err = tx.QueryRow(ctx, `
			UPDATE member_subscriptions
			SET remaining_visits = remaining_visits - 1, updated_at = now()
			WHERE id = $1
			RETURNING remaining_visits
		`, sub.ID).Scan(&remaining)
		if err != nil {
			return nil, apperr.Internal("failed to update remaining visits", err)
		}
		sub.RemainingVisits = &remaining
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("failed to process check-in", err)
	}

	checkInsTotal.Inc()
	s.log.Info("member checked in", "memberId", m.ID, "checkInId", rec.ID)

	return &attendance.CheckInResponse{
		Success:      true,
		Message:      "Check-in successful",
		Member:       m.Summary,
		Subscription: *sub,
		CheckIn:      rec,
	}, nil
}

func (s *AttendanceService) resolveMember(ctx context.Context, tx pgx.Tx, in CheckInInput) (checkInMember, error) {
	var (
		m     checkInMember
		query string
		arg   any
	)
	if in.MemberID != nil {
		query = `SELECT id, first_name, last_name, email, is_active FROM members WHERE id = $1`
		arg = *in.MemberID
	} else {
		query = `SELECT id, first_name, last_name, email, is_active FROM members WHERE member_code = $1`
		arg = in.MemberCode
	}

	err := tx.QueryRow(ctx, query, arg).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, apperr.NotFound("member not found")
		}
		return m, apperr.Internal("failed to look up member", err)
	}
	return m, nil
}

// authorizingSubscription applies the selection rule: among the member's
// active-status subscriptions, the one with the latest end date wins.
func (s *AttendanceService) authorizingSubscription(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (*subscription.Summary, error) {
	var sub subscription.Summary
	err := tx.QueryRow(ctx, `
		SELECT s.id, p.name, s.status, s.end_date, s.remaining_visits
		FROM member_subscriptions s
		JOIN membership_plans p ON p.id = s.plan_id
		WHERE s.member_id = $1 AND s.status = 'active'
		ORDER BY s.end_date DESC
		LIMIT 1
	`, memberID).Scan(&sub.ID, &sub.PlanName, &sub.Status, &sub.EndDate, &sub.RemainingVisits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to look up membership", err)
	}
	return &sub, nil
}

func (s *AttendanceService) openRecord(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (*attendance.Record, error) {
	var rec attendance.Record
	err := tx.QueryRow(ctx, `
		SELECT id, member_id, check_in_time, created_at
		FROM attendance_logs
		WHERE member_id = $1 AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`, memberID).Scan(&rec.ID, &rec.MemberID, &rec.CheckInTime, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to look up open check-ins", err)
	}
	return &rec, nil
}

// CheckOut closes an open attendance record. It is deliberately single-use:
// a second call for the same id gets a 404.
func (s *AttendanceService) CheckOut(ctx context.Context, checkInID uuid.UUID, notes *string) (*attendance.Record, error) {
	var rec attendance.Record
	err := s.db.QueryRow(ctx, `
		UPDATE attendance_logs
		SET check_out_time = now(), notes = COALESCE($2, notes)
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING id, member_id, check_in_time, check_out_time, notes, processed_by, created_at
	`, checkInID, notes).Scan(
		&rec.ID, &rec.MemberID, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Notes, &rec.ProcessedBy, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("active check-in not found or already checked out")
		}
		return nil, apperr.Internal("failed to process check-out", err)
	}

	s.log.Info("member checked out", "memberId", rec.MemberID, "checkInId", rec.ID)
	return &rec, nil
}

// Logs returns a filtered, paginated history plus the capped list of members
// currently in the gym.
func (s *AttendanceService) Logs(ctx context.Context, q attendance.LogsQuery) (*attendance.LogsResponse, error) {
	where := ""
	args := []any{}
	cond := func(clause string, arg any) {
		args = append(args, arg)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if q.MemberID != nil {
		cond("a.member_id = $%d", *q.MemberID)
	}
	if q.StartDate != nil {
		cond("a.check_in_time >= $%d", *q.StartDate)
	}
	if q.EndDate != nil {
		cond("a.check_in_time <= $%d", *q.EndDate)
	}

	var total int
	countQuery := "SELECT count(*) FROM attendance_logs a " + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperr.Internal("failed to count attendance logs", err)
	}

	page, limit := pagination.Clamp(q.Page, q.Limit)
	offset := (page - 1) * limit

	listQuery := `
		SELECT a.id, a.member_id, a.check_in_time, a.check_out_time, a.notes,
		       a.processed_by, a.created_at,
		       m.id, m.first_name, m.last_name, m.email
		FROM attendance_logs a
		JOIN members m ON m.id = a.member_id
		` + where + fmt.Sprintf(`
		ORDER BY a.check_in_time DESC
		LIMIT %d OFFSET %d`, limit, offset)

	data, err := s.scanRecords(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}

	open, err := s.scanRecords(ctx, fmt.Sprintf(`
		SELECT a.id, a.member_id, a.check_in_time, a.check_out_time, a.notes,
		       a.processed_by, a.created_at,
		       m.id, m.first_name, m.last_name, m.email
		FROM attendance_logs a
		JOIN members m ON m.id = a.member_id
		WHERE a.check_out_time IS NULL
		ORDER BY a.check_in_time DESC
		LIMIT %d`, openRecordsCap))
	if err != nil {
		return nil, err
	}

	return &attendance.LogsResponse{
		Data:               data,
		Pagination:         pagination.New(page, limit, total),
		CurrentlyCheckedIn: open,
	}, nil
}

func (s *AttendanceService) scanRecords(ctx context.Context, query string, args ...any) ([]attendance.RecordWithMember, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to fetch attendance logs", err)
	}
	defer rows.Close()

	records := []attendance.RecordWithMember{}
	for rows.Next() {
		var r attendance.RecordWithMember
		err := rows.Scan(
			&r.ID, &r.MemberID, &r.CheckInTime, &r.CheckOutTime, &r.Notes,
			&r.ProcessedBy, &r.CreatedAt,
			&r.Member.ID, &r.Member.FirstName, &r.Member.LastName, &r.Member.Email,
		)
		if err != nil {
			return nil, apperr.Internal("failed to scan attendance log", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch attendance logs", err)
	}
	return records, nil
}
