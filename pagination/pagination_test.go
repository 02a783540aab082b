package pagination

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nums(items []PageItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Number
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := make([]int, 95)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name      string
		pageSize  int
		page      int
		wantPage  int
		wantFirst int
		wantLen   int
		wantPages int
	}{
		{"first page", 40, 1, 1, 1, 40, 3},
		{"last partial page", 40, 3, 3, 81, 15, 3},
		{"page below range", 40, 0, 1, 1, 40, 3},
		{"page above range", 40, 9, 3, 81, 15, 3},
		{"single page when size is zero", 0, 2, 1, 1, 95, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.pageSize, tt.page)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, 95, got.TotalItems)
			require.Len(t, got.Items, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got.Items[0])
		})
	}

	t.Run("empty list is one empty page", func(t *testing.T) {
		got := Paginate([]string{}, 10, 3)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 1, got.TotalPages)
		assert.Empty(t, got.Items)
	})
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 5, []int{1, 2, 3, 4, 5}},
		{4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{1, 10, []int{1, 2, 0, 10}},
		{4, 10, []int{1, 3, 4, 5, 0, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{7, 10, []int{1, 0, 6, 7, 8, 10}},
		{10, 10, []int{1, 0, 9, 10}},
	}
	for _, tt := range tests {
		got := nums(PageNumbers(tt.current, tt.total))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("PageNumbers(%d, %d) mismatch (-want +got):\n%s", tt.current, tt.total, diff)
		}
	}
}

func TestPageItemJSON(t *testing.T) {
	b, err := json.Marshal(PageNumbers(5, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"...",4,5,6,"...",10]`, string(b))

	var back []PageItem
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, nums(back))
}

func TestParsePage(t *testing.T) {
	page, ok := ParsePage(httptest.NewRequest("GET", "/api/products", nil))
	assert.Equal(t, 1, page)
	assert.False(t, ok)

	page, ok = ParsePage(httptest.NewRequest("GET", "/api/products?page=3", nil))
	assert.Equal(t, 3, page)
	assert.True(t, ok)

	page, ok = ParsePage(httptest.NewRequest("GET", "/api/products?page=abc", nil))
	assert.Equal(t, 1, page)
	assert.True(t, ok)
}
