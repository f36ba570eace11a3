package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/subscription"
)

type SubscriptionService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewSubscriptionService(db *pgxpool.Pool, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{db: db, log: log}
}

const subscriptionColumns = `s.id, s.member_id, s.plan_id, p.name, s.start_date,
	s.end_date, s.status, s.remaining_visits, s.price, s.notes, s.created_at,
	s.updated_at`

func scanSubscription(row pgx.Row) (subscription.Subscription, error) {
	var sub subscription.Subscription
	err := row.Scan(
		&sub.ID, &sub.MemberID, &sub.PlanID, &sub.PlanName, &sub.StartDate,
		&sub.EndDate, &sub.Status, &sub.RemainingVisits, &sub.Price,
		&sub.Notes, &sub.CreatedAt, &sub.UpdatedAt,
	)
	return sub, err
}

// Assign grants a member a plan instance: the validity window is start plus the
// plan's duration, and visit-capped plans seed the remaining-visit counter.
func (s *SubscriptionService) Assign(ctx context.Context, memberID, planID uuid.UUID, startDate *time.Time, notes *string) (*subscription.Subscription, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to assign plan", err)
	}
	defer tx.Rollback(ctx)

	var memberExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID).Scan(&memberExists); err != nil {
		return nil, apperr.Internal("failed to look up member", err)
	}
	if !memberExists {
		return nil, apperr.NotFound("member not found")
	}

	var (
		durationDays int
		price        float64
		maxVisits    *int
		planActive   bool
	)
	err = tx.QueryRow(ctx, `
		SELECT duration_days, price, max_visits, is_active
		FROM membership_plans WHERE id = $1
	`, planID).Scan(&durationDays, &price, &maxVisits, &planActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("membership plan not found")
		}
		return nil, apperr.Internal("failed to look up membership plan", err)
	}
	if !planActive {
		return nil, apperr.Forbidden("membership plan is not active")
	}

	start := time.Now()
	if startDate != nil {
		start = *startDate
	}
	end := start.AddDate(0, 0, durationDays)

	var subID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO member_subscriptions (member_id, plan_id, start_date, end_date,
			status, remaining_visits, price, notes)
		VALUES ($1, $2, $3, $4, 'active', $5, $6, $7)
		RETURNING id
	`, memberID, planID, start, end, maxVisits, price, notes).Scan(&subID)
	if err != nil {
		return nil, apperr.Internal("failed to create subscription", err)
	}

	sub, err := scanSubscription(tx.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM member_subscriptions s
		JOIN membership_plans p ON p.id = s.plan_id
		WHERE s.id = $1
	`, subID))
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscription", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("failed to assign plan", err)
	}

	s.log.Info("plan assigned", "memberId", memberID, "planId", planID, "subscriptionId", subID)
	return &sub, nil
}

func (s *SubscriptionService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]subscription.Subscription, error) {
	var memberExists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID).Scan(&memberExists); err != nil {
		return nil, apperr.Internal("failed to look up member", err)
	}
	if !memberExists {
		return nil, apperr.NotFound("member not found")
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM member_subscriptions s
		JOIN membership_plans p ON p.id = s.plan_id
		WHERE s.member_id = $1
		ORDER BY s.end_date DESC
	`, memberID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscriptions", err)
	}
	defer rows.Close()

	subs := []subscription.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, apperr.Internal("failed to scan subscription", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch subscriptions", err)
	}
	return subs, nil
}

// Cancel flips an active subscription to cancelled. Already-terminal rows are
// reported as a conflict rather than silently re-cancelled.
func (s *SubscriptionService) Cancel(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var status string
	err := s.db.QueryRow(ctx, `SELECT status FROM member_subscriptions WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("subscription not found")
		}
		return nil, apperr.Internal("failed to look up subscription", err)
	}
	if status != subscription.StatusActive {
		return nil, apperr.Conflict("subscription is not active", map[string]any{"status": status})
	}

	sub, err := scanSubscription(s.db.QueryRow(ctx, `
		UPDATE member_subscriptions s
		SET status = 'cancelled', updated_at = now()
		FROM membership_plans p
		WHERE s.id = $1 AND p.id = s.plan_id
		RETURNING `+subscriptionColumns,
		id))
	if err != nil {
		return nil, apperr.Internal("failed to cancel subscription", err)
	}

	s.log.Info("subscription cancelled", "subscriptionId", id)
	return &sub, nil
}
