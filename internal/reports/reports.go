package reports

import (
	"math"
	"sort"
	"time"

	"github.com/saydulla27/foodapp-frontend/internal/models"
)

// Range selects the reporting window relative to "now".
type Range string

const (
	RangeToday  Range = "today"
	RangeLast7  Range = "last7"
	RangeLast30 Range = "last30"
	RangeAll    Range = "all"
)

func ParseRange(s string) Range {
	switch Range(s) {
	case RangeToday, RangeLast7, RangeLast30, RangeAll:
		return Range(s)
	default:
		return RangeLast7
	}
}

// Filter keeps orders created within the range. Orders without a usable
// creation time are kept rather than silently narrowing the report.
func Filter(orders []models.Order, r Range, now time.Time) []models.Order {
	if r == RangeAll {
		return orders
	}
	var from time.Time
	switch r {
	case RangeToday:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeLast7:
		from = now.Add(-7 * 24 * time.Hour)
	case RangeLast30:
		from = now.Add(-30 * 24 * time.Hour)
	default:
		return orders
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.IsZero() || !o.CreatedAt.Before(from) {
			out = append(out, o)
		}
	}
	return out
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Summary struct {
	Count       int           `json:"count"`
	TotalAmount int64         `json:"totalAmount"`
	Average     int64         `json:"average"`
	ByStatus    []StatusCount `json:"byStatus"`
}

// Summarize aggregates an already-fetched order list: order count, amount
// total, rounded average check, and a status breakdown sorted by count
// descending (status ascending on ties, for stable output).
func Summarize(orders []models.Order) Summary {
	s := Summary{Count: len(orders)}
	byStatus := make(map[string]int)
	for _, o := range orders {
		s.TotalAmount += o.TotalAmount
		status := o.Status
		if status == "" {
			status = "UNKNOWN"
		}
		byStatus[status]++
	}
	if s.Count > 0 {
		s.Average = int64(math.Round(float64(s.TotalAmount) / float64(s.Count)))
	}

	for status, count := range byStatus {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: status, Count: count})
	}
	sort.Slice(s.ByStatus, func(i, j int) bool {
		if s.ByStatus[i].Count != s.ByStatus[j].Count {
			return s.ByStatus[i].Count > s.ByStatus[j].Count
		}
		return s.ByStatus[i].Status < s.ByStatus[j].Status
	})
	return s
}
