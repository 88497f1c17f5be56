package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id     string
	rating float64
}

func TestFilterAndReject(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, Filter(nums, even))
	assert.Equal(t, []int{1, 3, 5}, Reject(nums, even))
}

func TestFirst(t *testing.T) {
	items := []item{{"a", 1}, {"b", 2}, {"c", 2}}

	got, ok := First(items, func(i item) bool { return i.rating == 2 })
	require.True(t, ok)
	assert.Equal(t, "b", got.id)

	_, ok = First(items, func(i item) bool { return i.rating == 9 })
	assert.False(t, ok)
}

func TestSortByIsStable(t *testing.T) {
	items := []item{{"a", 4.5}, {"b", 4.8}, {"c", 4.5}, {"d", 4.8}}

	SortBy(items, func(x, y item) bool { return x.rating > y.rating })

	// Ties keep their original relative order.
	assert.Equal(t, []item{{"b", 4.8}, {"d", 4.8}, {"a", 4.5}, {"c", 4.5}}, items)
}

func TestTake(t *testing.T) {
	nums := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, Take(nums, 2))
	assert.Equal(t, nums, Take(nums, 10))
}

func TestSumInt(t *testing.T) {
	lines := []struct{ qty, cents int }{{2, 19999}, {1, 8999}}
	total := SumInt(lines, func(l struct{ qty, cents int }) int { return l.qty * l.cents })
	assert.Equal(t, 2*19999+8999, total)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"p_1", "p_2"}, Unique([]string{"p_1", "p_2", "p_1"}))
}

func TestGroupByAndKeyBy(t *testing.T) {
	items := []item{{"a", 1}, {"b", 2}, {"c", 1}}

	grouped := GroupBy(items, func(i item) string {
		if i.rating > 1 {
			return "high"
		}
		return "low"
	})
	assert.Len(t, grouped["low"], 2)
	assert.Len(t, grouped["high"], 1)

	keyed := KeyBy(items, func(i item) string { return i.id })
	assert.Equal(t, 2.0, keyed["b"].rating)
}
