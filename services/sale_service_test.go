package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/sale"
)

func TestCreateSaleDecrementsStock(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewSaleService(pool, testLogger())
	ctx := context.Background()

	productID := createTestProduct(t, pool, 10, 19.99)

	result, err := svc.Create(ctx, CreateSaleInput{
		CreateSaleRequest: sale.CreateSaleRequest{
			PaymentMethod: "cash",
			PaymentStatus: sale.PaymentCompleted,
			Items: []sale.CreateItemInput{
				{ProductID: productID.String(), Quantity: 3},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.InDelta(t, 59.97, result.TotalAmount, 0.001)
	assert.Equal(t, "completed", result.PaymentStatus)

	var stock int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock))
	assert.Equal(t, 7, stock)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, result.ID)
	})
}

// A failing second line must leave the first product's stock untouched.
func TestCreateSaleIsAtomic(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewSaleService(pool, testLogger())
	ctx := context.Background()

	okProduct := createTestProduct(t, pool, 10, 5.00)
	lowProduct := createTestProduct(t, pool, 1, 8.00)

	_, err := svc.Create(ctx, CreateSaleInput{
		CreateSaleRequest: sale.CreateSaleRequest{
			PaymentMethod: "card",
			Items: []sale.CreateItemInput{
				{ProductID: okProduct.String(), Quantity: 2},
				{ProductID: lowProduct.String(), Quantity: 5},
			},
		},
	})
	require.Error(t, err)
	e := apperr.From(err)
	assert.Equal(t, http.StatusBadRequest, e.Status())

	details, ok := e.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, details["available"])
	assert.Equal(t, 5, details["requested"])

	var stock int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT stock_quantity FROM products WHERE id = $1`, okProduct).Scan(&stock))
	assert.Equal(t, 10, stock, "first line's stock must be unchanged after rejection")
}

func TestCreateSaleRejectsExcessDiscount(t *testing.T) {
	pool := setupTestDB(t)
	svc := NewSaleService(pool, testLogger())

	productID := createTestProduct(t, pool, 5, 10.00)

	_, err := svc.Create(context.Background(), CreateSaleInput{
		CreateSaleRequest: sale.CreateSaleRequest{
			PaymentMethod:  "cash",
			DiscountAmount: 100.00,
			Items: []sale.CreateItemInput{
				{ProductID: productID.String(), Quantity: 1},
			},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status())
}
