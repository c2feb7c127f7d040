// Package report computes the descriptive analytics that surround the
// segmentation core: revenue rankings, spending bands, product rankings,
// purchase-time patterns, and the metric correlation matrix. Everything is a
// pure in-memory computation; rendering belongs to the caller.
package report

import (
	"sort"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// CustomerRevenue is one row of the per-customer revenue ranking.
type CustomerRevenue struct {
	CustomerID string  `json:"customer_id"`
	Revenue    float64 `json:"revenue"`
}

// TotalRevenue sums line totals over all transactions.
func TotalRevenue(txns []models.TransactionRecord) float64 {
	var total float64
	for _, t := range txns {
		total += t.LineTotal()
	}
	return total
}

// RevenueByCustomer ranks customers by lifetime revenue, highest first.
// Equal revenues order by customer id so the ranking is reproducible.
func RevenueByCustomer(txns []models.TransactionRecord) []CustomerRevenue {
	byCustomer := make(map[string]float64)
	for _, t := range txns {
		byCustomer[t.CustomerID] += t.LineTotal()
	}

	rows := make([]CustomerRevenue, 0, len(byCustomer))
	for id, revenue := range byCustomer {
		rows = append(rows, CustomerRevenue{CustomerID: id, Revenue: revenue})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Revenue != rows[b].Revenue {
			return rows[a].Revenue > rows[b].Revenue
		}
		return rows[a].CustomerID < rows[b].CustomerID
	})
	return rows
}

// TopCustomers returns the first n rows of the revenue ranking.
func TopCustomers(txns []models.TransactionRecord, n int) []CustomerRevenue {
	if n <= 0 {
		return nil
	}
	rows := RevenueByCustomer(txns)
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// Band is a coarse spending level derived from lifetime revenue alone,
// independent of RFM segmentation.
type Band string

const (
	BandHigh   Band = "High"
	BandMedium Band = "Medium"
	BandLow    Band = "Low"
)

// BandThresholds holds the revenue cut-offs for the High and Medium bands.
type BandThresholds struct {
	High   float64
	Medium float64
}

// DefaultBandThresholds keeps the historical cut-offs: High from 1000,
// Medium from 500.
var DefaultBandThresholds = BandThresholds{High: 1000, Medium: 500}

// BandOf labels a revenue figure.
func BandOf(revenue float64, t BandThresholds) Band {
	switch {
	case revenue >= t.High:
		return BandHigh
	case revenue >= t.Medium:
		return BandMedium
	default:
		return BandLow
	}
}

// BandsByCustomer labels every customer's lifetime revenue.
func BandsByCustomer(txns []models.TransactionRecord, t BandThresholds) map[string]Band {
	bands := make(map[string]Band)
	for _, row := range RevenueByCustomer(txns) {
		bands[row.CustomerID] = BandOf(row.Revenue, t)
	}
	return bands
}
