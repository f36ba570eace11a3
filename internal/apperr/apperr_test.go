package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad", nil), http.StatusBadRequest},
		{Unauthorized("no session"), http.StatusUnauthorized},
		{Forbidden("not allowed"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate", nil), http.StatusConflict},
		{Internal("boom", errors.New("cause")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status(), c.err.Message)
	}
}

func TestFrom(t *testing.T) {
	t.Run("passes through typed errors", func(t *testing.T) {
		orig := NotFound("member not found")
		assert.Same(t, orig, From(orig))
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		orig := Forbidden("no remaining visits")
		wrapped := fmt.Errorf("check-in: %w", orig)
		assert.Same(t, orig, From(wrapped))
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		cause := errors.New("connection reset")
		e := From(cause)
		require.Equal(t, KindInternal, e.Kind)
		assert.Equal(t, http.StatusInternalServerError, e.Status())
		assert.ErrorIs(t, e, cause)
	})
}

func TestInternalHidesCauseFromMessage(t *testing.T) {
	e := Internal("failed to create member", errors.New("pq: secret detail"))
	assert.Equal(t, "failed to create member", e.Message)
	assert.Contains(t, e.Error(), "secret detail")
}
