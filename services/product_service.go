package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/pagination"
	"gymDeskAPI/internal/product"
)

type ProductService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewProductService(db *pgxpool.Pool, log *slog.Logger) *ProductService {
	return &ProductService{db: db, log: log}
}

const productColumns = `id, name, description, category, sku, price, cost,
	stock_quantity, min_stock_level, image_url, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.SKU, &p.Price, &p.Cost,
		&p.StockQuantity, &p.MinStockLevel, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	p.IsLowStock = p.StockQuantity <= p.MinStockLevel
	return p, err
}

func (s *ProductService) Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO products (name, description, category, sku, price, cost,
			stock_quantity, min_stock_level, image_url)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING `+productColumns,
		req.Name, req.Description, req.Category, req.SKU, req.Price, req.Cost,
		req.StockQuantity, req.MinStockLevel, req.ImageURL,
	)

	p, err := scanProduct(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("SKU already exists", nil)
		}
		return nil, apperr.Internal("failed to create product", err)
	}

	s.log.Info("product created", "productId", p.ID, "sku", p.SKU)
	return &p, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row := s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to fetch product", err)
	}
	return &p, nil
}

func (s *ProductService) List(ctx context.Context, q product.ListProductsQuery) ([]product.Product, pagination.Pagination, error) {
	where := ""
	args := []any{}
	and := func(clause string) {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += clause
	}
	cond := func(clause string, arg any) {
		args = append(args, arg)
		and(fmt.Sprintf(clause, len(args)))
	}

	if q.Search != "" {
		cond("(name ILIKE $%d OR description ILIKE $%[1]d OR sku ILIKE $%[1]d)", "%"+q.Search+"%")
	}
	if q.Category != "" {
		cond("category = $%d", q.Category)
	}
	if q.LowStock {
		and("stock_quantity <= min_stock_level")
	}
	if q.IsActive != nil {
		cond("is_active = $%d", *q.IsActive)
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM products "+where, args...).Scan(&total); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to count products", err)
	}

	page, limit := pagination.Clamp(q.Page, q.Limit)
	query := `SELECT ` + productColumns + ` FROM products ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch products", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, pagination.Pagination{}, apperr.Internal("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch products", err)
	}

	return products, pagination.New(page, limit, total), nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req product.UpdateProductRequest) (*product.Product, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE products
		SET name            = COALESCE($2, name),
		    description     = COALESCE($3, description),
		    category        = COALESCE($4, category),
		    sku             = COALESCE($5, sku),
		    price           = COALESCE($6, price),
		    cost            = COALESCE($7, cost),
		    stock_quantity  = COALESCE($8, stock_quantity),
		    min_stock_level = COALESCE($9, min_stock_level),
		    image_url       = COALESCE($10, image_url),
		    is_active       = COALESCE($11, is_active),
		    updated_at      = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, req.Name, req.Description, req.Category, req.SKU, req.Price,
		req.Cost, req.StockQuantity, req.MinStockLevel, req.ImageURL,
		req.IsActive,
	)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("product not found")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("SKU already exists", nil)
		}
		return nil, apperr.Internal("failed to update product", err)
	}
	return &p, nil
}

// Deactivate soft-deletes a product so past sale line items keep resolving.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE products
		SET is_active = false, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to deactivate product", err)
	}

	s.log.Info("product deactivated", "productId", id)
	return &p, nil
}
