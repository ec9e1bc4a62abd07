package pagination

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=3&per_page=5", nil)
	p := FromRequest(req)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.PerPage)
	assert.Equal(t, 10, p.Offset)
}

func TestFromRequest_InvalidValuesFallBack(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=-1&per_page=abc", nil)
	p := FromRequest(req)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestNew_CapsPerPage(t *testing.T) {
	assert.Equal(t, MaxPerPage, New(1, 500).PerPage)
	assert.Equal(t, MaxPerPage, New(1, 100).PerPage)
}

func TestWindow(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"a", "b"}, Window(items, New(1, 2)))
	assert.Equal(t, []string{"e"}, Window(items, New(3, 2)))
	assert.Equal(t, []string{}, Window(items, New(4, 2)))
}

func TestFromRequest_HugePageIsPastTheEnd(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=9223372036854775807&per_page=20", nil)
	p := FromRequest(req)

	assert.Equal(t, math.MaxInt, p.Page)
	assert.Equal(t, math.MaxInt, p.Offset)
	assert.Equal(t, []int{}, Window([]int{1, 2, 3}, p))

	r := NewResult([]int{}, 3, p)
	assert.False(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestWindow_NegativeOffsetStartsAtZero(t *testing.T) {
	p := Params{Page: 1, PerPage: 2, Offset: -40}
	assert.Equal(t, []int{1, 2}, Window([]int{1, 2, 3}, p))
}

func TestWindow_DoesNotAlias(t *testing.T) {
	items := []int{1, 2, 3}
	page := Window(items, New(1, 2))
	page[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestNewResult(t *testing.T) {
	r := NewResult([]int{1, 2}, 5, New(2, 2))

	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	empty := NewResult[int](nil, 0, DefaultParams())
	assert.Equal(t, []int{}, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
