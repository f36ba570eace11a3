package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
)

type DashboardService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewDashboardService(db *pgxpool.Pool, log *slog.Logger) *DashboardService {
	return &DashboardService{db: db, log: log}
}

// Summary backs the admin dashboard's headline cards.
type Summary struct {
	TotalMembers       int     `json:"totalMembers"`
	ActiveMembers      int     `json:"activeMembers"`
	CurrentlyCheckedIn int     `json:"currentlyCheckedIn"`
	CheckInsToday      int     `json:"checkInsToday"`
	SalesTotalToday    float64 `json:"salesTotalToday"`
	LowStockProducts   int     `json:"lowStockProducts"`
}

func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	startOfDay := time.Now().Truncate(24 * time.Hour)

	var sum Summary
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM members),
			(SELECT count(*) FROM members WHERE is_active),
			(SELECT count(*) FROM attendance_logs WHERE check_out_time IS NULL),
			(SELECT count(*) FROM attendance_logs WHERE check_in_time >= $1),
			(SELECT COALESCE(sum(final_amount), 0) FROM sales WHERE created_at >= $1),
			(SELECT count(*) FROM products WHERE is_active AND stock_quantity <= min_stock_level)
	`, startOfDay).Scan(
		&sum.TotalMembers, &sum.ActiveMembers, &sum.CurrentlyCheckedIn,
		&sum.CheckInsToday, &sum.SalesTotalToday, &sum.LowStockProducts,
	)
	if err != nil {
		return nil, apperr.Internal("failed to build dashboard summary", err)
	}
	return &sum, nil
}
