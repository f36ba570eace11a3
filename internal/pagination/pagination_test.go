package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults applied", 0, 0, 1, DefaultLimit},
		{"negative inputs", -3, -1, 1, DefaultLimit},
		{"within bounds", 2, 25, 2, 25},
		{"limit capped", 1, 500, 1, MaxLimit},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, limit := Clamp(c.page, c.limit)
			assert.Equal(t, c.wantPage, page)
			assert.Equal(t, c.wantLimit, limit)
		})
	}
}

func TestNew(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, Pages: 0}, New(1, 10, 0))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 10, Pages: 1}, New(1, 10, 10))
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 11, Pages: 2}, New(2, 10, 11))
	assert.Equal(t, Pagination{Page: 3, Limit: 25, Total: 99, Pages: 4}, New(3, 25, 99))
}
