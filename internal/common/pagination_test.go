package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination_Defaults(t *testing.T) {
	p := NewPagination(0, 0)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 20, p.Limit())
}

func TestNewPagination_NegativeValues(t *testing.T) {
	p := NewPagination(-3, -10)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestPagination_Offset(t *testing.T) {
	p := NewPagination(3, 20)

	assert.Equal(t, 40, p.Offset())
}

func TestNewPage_Boundary(t *testing.T) {
	// 45 rows at 20 per page: pages 1 and 2 full, page 3 has 5, page 4 empty
	cases := []struct {
		page      int
		itemCount int
	}{
		{1, 20},
		{2, 20},
		{3, 5},
		{4, 0},
	}

	for _, tc := range cases {
		items := make([]int, tc.itemCount)
		page := NewPage(items, 45, NewPagination(tc.page, 20))

		assert.Equal(t, int64(45), page.Total)
		assert.Equal(t, 3, page.Pages)
		assert.Equal(t, tc.page, page.CurrentPage)
		assert.Equal(t, 20, page.PerPage)
	}
}

func TestNewPage_EmptySet(t *testing.T) {
	page := NewPage([]int{}, 0, NewPagination(1, 20))

	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.Pages)
}
