package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/plan"
)

type PlanService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewPlanService(db *pgxpool.Pool, log *slog.Logger) *PlanService {
	return &PlanService{db: db, log: log}
}

const planColumns = `id, name, description, duration_days, price, max_visits,
	is_active, created_at, updated_at`

func scanPlan(row pgx.Row) (plan.Plan, error) {
	var p plan.Plan
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.DurationDays, &p.Price,
		&p.MaxVisits, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (s *PlanService) Create(ctx context.Context, req plan.CreatePlanRequest) (*plan.Plan, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO membership_plans (name, description, duration_days, price, max_visits)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING `+planColumns,
		req.Name, req.Description, req.DurationDays, req.Price, req.MaxVisits,
	)

	p, err := scanPlan(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("plan name already exists", nil)
		}
		return nil, apperr.Internal("failed to create membership plan", err)
	}

	s.log.Info("membership plan created", "planId", p.ID, "name", p.Name)
	return &p, nil
}

func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	row := s.db.QueryRow(ctx, `SELECT `+planColumns+` FROM membership_plans WHERE id = $1`, id)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("membership plan not found")
		}
		return nil, apperr.Internal("failed to fetch membership plan", err)
	}
	return &p, nil
}

func (s *PlanService) List(ctx context.Context, isActive *bool) ([]plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM membership_plans`
	args := []any{}
	if isActive != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *isActive)
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to fetch membership plans", err)
	}
	defer rows.Close()

	plans := []plan.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, apperr.Internal("failed to scan membership plan", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch membership plans", err)
	}
	return plans, nil
}

func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req plan.UpdatePlanRequest) (*plan.Plan, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE membership_plans
		SET name          = COALESCE($2, name),
		    description   = COALESCE($3, description),
		    duration_days = COALESCE($4, duration_days),
		    price         = COALESCE($5, price),
		    max_visits    = COALESCE($6, max_visits),
		    is_active     = COALESCE($7, is_active),
		    updated_at    = now()
		WHERE id = $1
		RETURNING `+planColumns,
		id, req.Name, req.Description, req.DurationDays, req.Price,
		req.MaxVisits, req.IsActive,
	)

	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("membership plan not found")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("plan name already exists", nil)
		}
		return nil, apperr.Internal("failed to update membership plan", err)
	}
	return &p, nil
}

// Deactivate soft-deletes a plan. Existing subscriptions keep pointing at it;
// it just stops being offered.
func (s *PlanService) Deactivate(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE membership_plans
		SET is_active = false, updated_at = now()
		WHERE id = $1
		RETURNING `+planColumns, id)

	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("membership plan not found")
		}
		return nil, apperr.Internal("failed to deactivate membership plan", err)
	}

	s.log.Info("membership plan deactivated", "planId", id)
	return &p, nil
}
