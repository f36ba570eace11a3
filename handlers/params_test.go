package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymDeskAPI/internal/apperr"
)

func TestPathID(t *testing.T) {
	want := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/members/"+want.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": want.String()})

	got, err := pathID(req)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	_, err = pathID(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.From(err).Kind)
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/members?page=3&limit=abc", nil)
	assert.Equal(t, 3, queryInt(req, "page", 1))
	assert.Equal(t, 10, queryInt(req, "limit", 10))
	assert.Equal(t, 1, queryInt(req, "missing", 1))
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?isActive=true&lowStock=false&odd=yes", nil)

	v := queryBool(req, "isActive")
	require.NotNil(t, v)
	assert.True(t, *v)

	v = queryBool(req, "lowStock")
	require.NotNil(t, v)
	assert.False(t, *v)

	assert.Nil(t, queryBool(req, "odd"))
	assert.Nil(t, queryBool(req, "missing"))
}
