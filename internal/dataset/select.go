package dataset

import (
	"fmt"

	"github.com/KaramelBytes/edastat/internal/config"
)

// Series is one named column of values.
type Series struct {
	Name   string
	Values []float64
}

// Selection binds the seven fields of an exploratory run to their values.
type Selection struct {
	Customers     Series
	WebsiteVisits Series
	Low           Series
	AgeYears      Series
	Open          Series
	ActiveUsers   Series
	Transactions  Series
}

// Select looks up each configured header by name. Any missing or
// non-numeric column fails the whole selection.
func Select(d *Dataset, cols config.Columns) (*Selection, error) {
	var sel Selection
	bind := []struct {
		dst  *Series
		name string
	}{
		{&sel.Customers, cols.Customers},
		{&sel.WebsiteVisits, cols.WebsiteVisits},
		{&sel.Low, cols.Low},
		{&sel.AgeYears, cols.AgeYears},
		{&sel.Open, cols.Open},
		{&sel.ActiveUsers, cols.ActiveUsers},
		{&sel.Transactions, cols.Transactions},
	}
	for _, b := range bind {
		vals, err := d.Column(b.name)
		if err != nil {
			return nil, fmt.Errorf("select columns: %w", err)
		}
		*b.dst = Series{Name: b.name, Values: vals}
	}
	return &sel, nil
}

// All returns the selected columns in canonical order.
func (s *Selection) All() []Series {
	return []Series{s.Customers, s.WebsiteVisits, s.Low, s.AgeYears, s.Open, s.ActiveUsers, s.Transactions}
}
