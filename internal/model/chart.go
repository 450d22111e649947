package model

import "github.com/shopspring/decimal"

// ChartData is the derived category breakdown: labels and sums as aligned
// sequences, plus fill and hover colors matched to each label.
type ChartData struct {
	Labels      []string
	Values      []decimal.Decimal
	Colors      []string
	HoverColors []string
}

// Empty reports whether the dataset holds no categories.
func (c ChartData) Empty() bool {
	return len(c.Labels) == 0
}

// Total returns the sum across all categories.
func (c ChartData) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range c.Values {
		total = total.Add(v)
	}
	return total
}
