package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saydulla27/foodapp-frontend/internal/models"
)

var now = time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: 1, TotalAmount: 20000, Status: "NEW", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, TotalAmount: 30000, Status: "DELIVERED", CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{ID: 3, TotalAmount: 10000, Status: "DELIVERED", CreatedAt: now.Add(-20 * 24 * time.Hour)},
		{ID: 4, TotalAmount: 50000, Status: "CANCELLED", CreatedAt: now.Add(-60 * 24 * time.Hour)},
		{ID: 5, TotalAmount: 15000, Status: ""},
	}
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeToday, ParseRange("today"))
	assert.Equal(t, RangeAll, ParseRange("all"))
	assert.Equal(t, RangeLast7, ParseRange(""))
	assert.Equal(t, RangeLast7, ParseRange("bogus"))
}

func TestFilterRanges(t *testing.T) {
	orders := sampleOrders()

	ids := func(os []models.Order) []int64 {
		out := make([]int64, 0, len(os))
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(Filter(orders, RangeAll, now)))
	// order 5 has no usable creation time and is always kept
	assert.Equal(t, []int64{1, 5}, ids(Filter(orders, RangeToday, now)))
	assert.Equal(t, []int64{1, 2, 5}, ids(Filter(orders, RangeLast7, now)))
	assert.Equal(t, []int64{1, 2, 3, 5}, ids(Filter(orders, RangeLast30, now)))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleOrders())

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, int64(125000), s.TotalAmount)
	assert.Equal(t, int64(25000), s.Average)
	assert.Equal(t, []StatusCount{
		{Status: "DELIVERED", Count: 2},
		{Status: "CANCELLED", Count: 1},
		{Status: "NEW", Count: 1},
		{Status: "UNKNOWN", Count: 1},
	}, s.ByStatus)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.TotalAmount)
	assert.Zero(t, s.Average)
	assert.Empty(t, s.ByStatus)
}

func TestSummarizeRoundsAverage(t *testing.T) {
	s := Summarize([]models.Order{
		{ID: 1, TotalAmount: 10000},
		{ID: 2, TotalAmount: 10001},
	})
	assert.Equal(t, int64(10001), s.Average)
}
