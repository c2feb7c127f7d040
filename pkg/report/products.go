package report

import (
	"sort"
	"strings"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// ProductRevenue is one row of the product revenue ranking.
type ProductRevenue struct {
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
}

// RevenueByProduct ranks products by revenue, highest first. Rows without a
// description group under their stock code; equal revenues order by label.
func RevenueByProduct(txns []models.TransactionRecord) []ProductRevenue {
	byProduct := make(map[string]float64)
	for _, t := range txns {
		byProduct[productLabel(t)] += t.LineTotal()
	}

	rows := make([]ProductRevenue, 0, len(byProduct))
	for label, revenue := range byProduct {
		rows = append(rows, ProductRevenue{Description: label, Revenue: revenue})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Revenue != rows[b].Revenue {
			return rows[a].Revenue > rows[b].Revenue
		}
		return rows[a].Description < rows[b].Description
	})
	return rows
}

// TopProducts returns the first n rows of the product ranking.
func TopProducts(txns []models.TransactionRecord, n int) []ProductRevenue {
	if n <= 0 {
		return nil
	}
	rows := RevenueByProduct(txns)
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

func productLabel(t models.TransactionRecord) string {
	if d := strings.TrimSpace(t.Description); d != "" {
		return d
	}
	return t.StockCode
}
