package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, DefaultLimit},
		{"negative", -3, -1, 1, DefaultLimit},
		{"in range", 2, 10, 2, 10},
		{"over max", 1, 50, 1, MaxLimit},
		{"at max", 1, 20, 1, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Normalize(1, 4).Offset())
	assert.Equal(t, 4, Normalize(2, 4).Offset())
	assert.Equal(t, 30, Normalize(4, 10).Offset())
}

func TestBuildMetadata(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		meta := BuildMetadata(Normalize(2, 4), 10)
		assert.Equal(t, Metadata{Page: 2, Limit: 4, Total: 10, TotalPages: 3, HasNextPage: true, HasPrevPage: true}, meta)
	})

	t.Run("last page", func(t *testing.T) {
		meta := BuildMetadata(Normalize(3, 4), 10)
		assert.False(t, meta.HasNextPage)
		assert.True(t, meta.HasPrevPage)
	})

	t.Run("empty", func(t *testing.T) {
		meta := BuildMetadata(Normalize(1, 4), 0)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.False(t, meta.HasPrevPage)
	})
}
