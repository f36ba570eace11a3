package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedHandler(t *testing.T, sawStaff *string) http.Handler {
	t.Helper()
	return AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID, ok := GetStaffID(r.Context())
		require.True(t, ok)
		*sawStaff = staffID
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddleware(t *testing.T) {
	InitAuth(testSecret)

	t.Run("valid token passes staff subject through", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "staff-42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "staff-42", staffID)
	})

	t.Run("missing header", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, staffID)
	})

	t.Run("malformed header without bearer prefix", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Token abc123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		token := signToken(t, "some-other-secret", jwt.MapClaims{"sub": "staff-42"})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, staffID)
	})

	t.Run("expired token", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "staff-42",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token without subject", func(t *testing.T) {
		var staffID string
		handler := authedHandler(t, &staffID)

		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
