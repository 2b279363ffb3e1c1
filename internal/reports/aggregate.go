// Package reports implements the aggregation engine behind the admin
// reports: exact-decimal totals, time-bucketed series, and CSV export.
// Everything here is a pure function over rows the caller already
// fetched; the package issues no queries and keeps no state.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/edu-delahoz/finanzas/internal/core"
)

type (
	// Row is one movement as the reports engine sees it. Amounts arrive
	// as decimal strings and are converted to cents before any math.
	Row struct {
		Type      core.MovementType
		Amount    string
		Concept   string
		Date      time.Time
		UserName  string
		UserEmail string
	}

	// Point is the accumulated income/expense for one period bucket.
	Point struct {
		Period  string `json:"period"`
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Net     string `json:"net"`
	}

	Totals struct {
		TotalIncome  string `json:"totalIncome"`
		TotalExpense string `json:"totalExpense"`
		Balance      string `json:"balance"`
	}

	Summary struct {
		Totals
		Points []Point `json:"points"`
	}
)

// CalculateTotals sums income and expense over all rows in cents.
// Balance is income minus expense. A row with an unrecognized type
// aborts the computation: such rows are rejected at creation, so
// meeting one here means the data is corrupt.
func CalculateTotals(rows []Row) (Totals, error) {
	var income, expense int64

	for _, row := range rows {
		amount := core.MinorUnits(row.Amount)
		switch row.Type {
		case core.Income:
			income += amount
		case core.Expense:
			expense += amount
		default:
			return Totals{}, fmt.Errorf("%w: %q", ErrUnknownType, row.Type)
		}
	}

	return Totals{
		TotalIncome:  core.FormatCents(income),
		TotalExpense: core.FormatCents(expense),
		Balance:      core.FormatCents(income - expense),
	}, nil
}

type bucket struct {
	income  int64
	expense int64
}

// BuildPoints groups rows into per-period buckets and returns them
// ordered ascending by period key. Only periods with at least one
// movement appear; empty input yields an empty, non-nil slice so the
// JSON encoding stays an array.
func BuildPoints(rows []Row, group Group) ([]Point, error) {
	buckets := make(map[string]*bucket)

	for _, row := range rows {
		period := FormatPeriod(row.Date, group)
		b := buckets[period]
		if b == nil {
			b = &bucket{}
			buckets[period] = b
		}
		amount := core.MinorUnits(row.Amount)
		switch row.Type {
		case core.Income:
			b.income += amount
		case core.Expense:
			b.expense += amount
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, row.Type)
		}
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	points := make([]Point, 0, len(periods))
	for _, period := range periods {
		b := buckets[period]
		points = append(points, Point{
			Period:  period,
			Income:  core.FormatCents(b.income),
			Expense: core.FormatCents(b.expense),
			Net:     core.FormatCents(b.income - b.expense),
		})
	}

	return points, nil
}

// Aggregate runs totals and points in one call.
func Aggregate(rows []Row, group Group) (Summary, error) {
	totals, err := CalculateTotals(rows)
	if err != nil {
		return Summary{}, err
	}
	points, err := BuildPoints(rows, group)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Totals: totals, Points: points}, nil
}
