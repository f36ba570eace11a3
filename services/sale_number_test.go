package services

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleNumber(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	n := newSaleNumber(now)

	require.True(t, strings.HasPrefix(n, "SALE"))

	millis := strconv.FormatInt(now.UnixMilli(), 10)
	rest := strings.TrimPrefix(n, "SALE")
	require.True(t, strings.HasPrefix(rest, millis))

	suffix := strings.TrimPrefix(rest, millis)
	assert.Len(t, suffix, 5)
	for _, c := range suffix {
		assert.Contains(t, saleNumberAlphabet, string(c))
	}
}

func TestNewSaleNumberVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[newSaleNumber(now)] = true
	}
	// Same millisecond, so any variety comes from the random suffix.
	assert.Greater(t, len(seen), 1)
}
