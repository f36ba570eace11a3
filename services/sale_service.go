package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/pagination"
	"gymDeskAPI/internal/sale"
)

type SaleService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewSaleService(db *pgxpool.Pool, log *slog.Logger) *SaleService {
	return &SaleService{db: db, log: log}
}

const saleNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newSaleNumber builds a human-diagnosable transaction number: time-based with
// a short random suffix. Uniqueness is best-effort; the column's unique
// constraint is the actual guard.
func newSaleNumber(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 5; i++ {
		suffix.WriteByte(saleNumberAlphabet[rand.Intn(len(saleNumberAlphabet))])
	}
	return fmt.Sprintf("SALE%d%s", now.UnixMilli(), suffix.String())
}

type CreateSaleInput struct {
	sale.CreateSaleRequest
	StaffID *string
}

// Create validates every line against live stock, then writes the sale header,
// its items, and the stock decrements in one transaction. Any failing line
// rejects the whole sale before anything is written.
func (s *SaleService) Create(ctx context.Context, in CreateSaleInput) (*sale.Sale, error) {
	var memberID *uuid.UUID
	if in.MemberID != "" {
		id, err := uuid.Parse(in.MemberID)
		if err != nil {
			return nil, apperr.Validation("invalid memberId", nil)
		}
		memberID = &id
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = sale.PaymentPending
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to create sale", err)
	}
	defer tx.Rollback(ctx)

	// Lock and validate every referenced product up front so a bad line
	// rejects the request with nothing written.
	type pricedLine struct {
		productID  uuid.UUID
		name       string
		sku        string
		quantity   int
		unitPrice  float64
		totalPrice float64
	}
	lines := make([]pricedLine, 0, len(in.Items))
	var totalAmount float64

	for _, item := range in.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apperr.Validation("invalid productId", nil)
		}

		var (
			name     string
			sku      string
			price    float64
			stock    int
			isActive bool
		)
		err = tx.QueryRow(ctx, `
			SELECT name, sku, price, stock_quantity, is_active
			FROM products WHERE id = $1
			FOR UPDATE
		`, productID).Scan(&name, &sku, &price, &stock, &isActive)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
			}
			return nil, apperr.Internal("failed to look up product", err)
		}

		if !isActive {
			return nil, apperr.Validation(fmt.Sprintf("product %s is not active", name), nil)
		}
		if stock < item.Quantity {
			return nil, apperr.Validation(
				fmt.Sprintf("insufficient stock for %s", name),
				map[string]any{"product": name, "available": stock, "requested": item.Quantity},
			)
		}

		lineTotal := price * float64(item.Quantity)
		totalAmount += lineTotal
		lines = append(lines, pricedLine{
			productID:  productID,
			name:       name,
			sku:        sku,
			quantity:   item.Quantity,
			unitPrice:  price,
			totalPrice: lineTotal,
		})
	}

	finalAmount := totalAmount - in.DiscountAmount
	if finalAmount < 0 {
		return nil, apperr.Validation("discount exceeds sale total", nil)
	}

	var result sale.Sale
	err = tx.QueryRow(ctx, `
		INSERT INTO sales (sale_number, member_id, total_amount, discount_amount,
			final_amount, payment_method, payment_status, staff_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING id, sale_number, member_id, total_amount, discount_amount,
			final_amount, payment_method, payment_status, staff_id, notes,
			created_at, updated_at
	`, newSaleNumber(time.Now()), memberID, totalAmount, in.DiscountAmount,
		finalAmount, in.PaymentMethod, paymentStatus, in.StaffID, in.Notes,
	).Scan(
		&result.ID, &result.SaleNumber, &result.MemberID, &result.TotalAmount,
		&result.DiscountAmount, &result.FinalAmount, &result.PaymentMethod,
		&result.PaymentStatus, &result.StaffID, &result.Notes,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, apperr.Internal("failed to create sale", err)
	}

	for _, line := range lines {
		var item sale.Item
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, result.ID, line.productID, line.quantity, line.unitPrice, line.totalPrice).Scan(&item.ID)
		if err != nil {
			return nil, apperr.Internal("failed to create sale item", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - $2, updated_at = now()
			WHERE id = $1 AND stock_quantity >= $2
		`, line.productID, line.quantity)
		if err != nil {
			return nil, apperr.Internal("failed to update product stock", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, apperr.Conflict(fmt.Sprintf("insufficient stock for %s", line.name), nil)
		}

		item.ProductID = line.productID
		item.ProductName = line.name
		item.ProductSKU = line.sku
		item.Quantity = line.quantity
		item.UnitPrice = line.unitPrice
		item.TotalPrice = line.totalPrice
		result.Items = append(result.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal("failed to create sale", err)
	}

	salesTotal.Inc()
	s.log.Info("sale created", "saleId", result.ID, "saleNumber", result.SaleNumber,
		"items", len(result.Items), "finalAmount", result.FinalAmount)
	return &result, nil
}

// List returns sales newest-first with their line items embedded.
func (s *SaleService) List(ctx context.Context, q sale.ListSalesQuery) ([]sale.Sale, pagination.Pagination, error) {
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

	if q.Date != nil {
		day := q.Date.Truncate(24 * time.Hour)
		cond("created_at >= $%d", day)
		cond("created_at < $%d", day.AddDate(0, 0, 1))
	}
	if q.Status != "" {
		cond("payment_status = $%d", q.Status)
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM sales "+where, args...).Scan(&total); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to count sales", err)
	}

	page, limit := pagination.Clamp(q.Page, q.Limit)
	query := `
		SELECT id, sale_number, member_id, total_amount, discount_amount,
			final_amount, payment_method, payment_status, staff_id, notes,
			created_at, updated_at
		FROM sales ` + where + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d`, limit, (page-1)*limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch sales", err)
	}
	defer rows.Close()

	sales := []sale.Sale{}
	for rows.Next() {
		var sl sale.Sale
		err := rows.Scan(
			&sl.ID, &sl.SaleNumber, &sl.MemberID, &sl.TotalAmount,
			&sl.DiscountAmount, &sl.FinalAmount, &sl.PaymentMethod,
			&sl.PaymentStatus, &sl.StaffID, &sl.Notes,
			&sl.CreatedAt, &sl.UpdatedAt,
		)
		if err != nil {
			return nil, pagination.Pagination{}, apperr.Internal("failed to scan sale", err)
		}
		sl.Items = []sale.Item{}
		sales = append(sales, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch sales", err)
	}

	for i := range sales {
		items, err := s.itemsForSale(ctx, sales[i].ID)
		if err != nil {
			return nil, pagination.Pagination{}, err
		}
		sales[i].Items = items
	}

	return sales, pagination.New(page, limit, total), nil
}

func (s *SaleService) itemsForSale(ctx context.Context, saleID uuid.UUID) ([]sale.Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT i.id, i.product_id, p.name, p.sku, i.quantity, i.unit_price, i.total_price
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
	`, saleID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch sale items", err)
	}
	defer rows.Close()

	items := []sale.Item{}
	for rows.Next() {
		var it sale.Item
		err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.ProductSKU,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice)
		if err != nil {
			return nil, apperr.Internal("failed to scan sale item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch sale items", err)
	}
	return items, nil
}
