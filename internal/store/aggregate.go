package store

import (
	"outlay/internal/model"

	"github.com/shopspring/decimal"
)

// Fill and hover palettes for the category chart, cycled or truncated to
// the number of distinct categories present.
var (
	palette      = []string{"#4ade80", "#60a5fa", "#fbbf24", "#f87171", "#a78bfa", "#94a3b8"}
	hoverPalette = []string{"#22c55e", "#3b82f6", "#f59e0b", "#ef4444", "#8b5cf6", "#64748b"}
)

// AggregateByCategory groups the given records by category and sums their
// amounts. Records with a missing or unknown category count as Other.
// Labels follow first-seen order; the function is pure, so equal input
// yields equal output.
func AggregateByCategory(expenses []model.Expense) model.ChartData {
	sums := make(map[model.Category]decimal.Decimal)
	var order []model.Category

	for _, e := range expenses {
		cat := model.NormalizeCategory(string(e.Category))
		if _, seen := sums[cat]; !seen {
			order = append(order, cat)
		}
		sums[cat] = sums[cat].Add(e.Amount)
	}

	data := model.ChartData{
		Labels:      make([]string, 0, len(order)),
		Values:      make([]decimal.Decimal, 0, len(order)),
		Colors:      make([]string, 0, len(order)),
		HoverColors: make([]string, 0, len(order)),
	}
	for i, cat := range order {
		data.Labels = append(data.Labels, string(cat))
		data.Values = append(data.Values, sums[cat])
		data.Colors = append(data.Colors, palette[i%len(palette)])
		data.HoverColors = append(data.HoverColors, hoverPalette[i%len(hoverPalette)])
	}
	return data
}

// AggregateByCategory derives the chart dataset from the current
// collection. Recomputed in full on every call; never cached.
func (s *Store) AggregateByCategory() model.ChartData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AggregateByCategory(s.expenses)
}

// Total returns the sum of all amounts currently held.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range s.expenses {
		total = total.Add(e.Amount)
	}
	return total
}
