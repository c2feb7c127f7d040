package report

import (
	"sort"
	"time"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// MonthRevenue is one calendar month's revenue.
type MonthRevenue struct {
	Month   time.Time `json:"month"`
	Revenue float64   `json:"revenue"`
}

// MonthlyRevenue buckets revenue by calendar month, in chronological order.
// Each bucket's Month is the first instant of the month in UTC.
func MonthlyRevenue(txns []models.TransactionRecord) []MonthRevenue {
	byMonth := make(map[time.Time]float64)
	for _, t := range txns {
		m := monthOf(t.InvoiceDate)
		byMonth[m] += t.LineTotal()
	}

	rows := make([]MonthRevenue, 0, len(byMonth))
	for m, revenue := range byMonth {
		rows = append(rows, MonthRevenue{Month: m, Revenue: revenue})
	}
	sort.Slice(rows, func(a, b int) bool {
		return rows[a].Month.Before(rows[b].Month)
	})
	return rows
}

// CountByHour tallies transactions by the hour of day they were invoiced,
// indexed 0 through 23.
func CountByHour(txns []models.TransactionRecord) [24]int {
	var counts [24]int
	for _, t := range txns {
		counts[t.InvoiceDate.Hour()]++
	}
	return counts
}

// CountByWeekday tallies transactions by invoice weekday, indexed by
// time.Weekday so Sunday is 0.
func CountByWeekday(txns []models.TransactionRecord) [7]int {
	var counts [7]int
	for _, t := range txns {
		counts[t.InvoiceDate.Weekday()]++
	}
	return counts
}

func monthOf(at time.Time) time.Time {
	u := at.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
