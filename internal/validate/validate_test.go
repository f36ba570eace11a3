package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/internal/apperr"
)

type sampleRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Payment   string  `json:"paymentMethod" validate:"oneof=cash card transfer"`
	Ignored   string  `json:"-" validate:"omitempty,max=1"`
	Discount  float64 `json:"discountAmount" validate:"gte=0"`
}

func TestStructValid(t *testing.T) {
	err := Struct(sampleRequest{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Quantity:  2,
		Payment:   "cash",
	})
	assert.NoError(t, err)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(sampleRequest{Payment: "crypto", Discount: -1})
	require.Error(t, err)

	e := apperr.From(err)
	require.Equal(t, apperr.KindValidation, e.Kind)

	fields, ok := e.Details.([]FieldError)
	require.True(t, ok)

	byField := map[string]string{}
	for _, fe := range fields {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "this field is required", byField["firstName"])
	assert.Equal(t, "must be greater than 0", byField["quantity"])
	assert.Equal(t, "must be one of: cash card transfer", byField["paymentMethod"])
	assert.Equal(t, "must be at least 0", byField["discountAmount"])
	assert.NotContains(t, byField, "FirstName")
}

func TestStructEmailMessage(t *testing.T) {
	err := Struct(sampleRequest{FirstName: "Ana", Email: "not-an-email", Quantity: 1, Payment: "card"})
	require.Error(t, err)

	fields := apperr.From(err).Details.([]FieldError)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "must be a valid email address", fields[0].Error)
}
