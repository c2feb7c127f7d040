package models

import (
	"time"
)

/*
LOAD → records produced by the ingestion collaborators.
*/

// TransactionRecord is one normalized retail line item as handed to the
// pipeline. Identifier and amount fields are guaranteed present and positive
// by the source that produced the record; the core does not re-validate.
type TransactionRecord struct {
	CustomerID  string    `json:"customer_id"`
	InvoiceID   string    `json:"invoice_id"`
	InvoiceDate time.Time `json:"invoice_date"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`

	// Descriptive feed columns, carried for reporting only. They never
	// influence segmentation and may be empty.
	StockCode   string `json:"stock_code,omitempty"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
}

// LineTotal is the derived value of the line item.
func (t TransactionRecord) LineTotal() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

/*
COMPUTE → per-customer results of the segmentation pipeline.
*/

// CustomerMetrics is one customer's behavioral record: days since the last
// invoice relative to the run's reference date, count of distinct invoices,
// and lifetime revenue. Records are immutable once aggregated; scores are
// derived into separate records, never written back.
type CustomerMetrics struct {
	CustomerID  string  `json:"customer_id"`
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
}

// RFMScore holds the three ordinal quartile scores for one customer.
// Each score is in 1..4; recency is inverted so that 4 always means best.
type RFMScore struct {
	CustomerID string `json:"customer_id"`
	RScore     int    `json:"r_score"`
	FScore     int    `json:"f_score"`
	MScore     int    `json:"m_score"`
}

// Tier is the human-readable segment label.
type Tier string

const (
	TierChampions Tier = "Champions"
	TierLoyal     Tier = "Loyal"
	TierAtRisk    Tier = "At Risk"
	TierOthers    Tier = "Others"
)

// Segment is the final classification for one customer. Code is the 3-digit
// composite of the R, F and M scores in that order ("444" is the best
// possible bucket); Tier is derived from the scores by fixed precedence.
type Segment struct {
	CustomerID string `json:"customer_id"`
	Code       string `json:"code"`
	Tier       Tier   `json:"tier"`
}
