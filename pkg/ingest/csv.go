// Package ingest reads transaction rows from CSV exports. Rows that violate
// the input contract (missing customer or invoice id, unparseable date,
// non-positive quantity or unit price) are skipped and counted, never
// repaired.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// Result carries the rows that passed the contract and the count of those
// that did not.
type Result struct {
	Transactions []models.TransactionRecord
	Skipped      int
}

// expected header names, matched case-insensitively
const (
	colInvoice     = "InvoiceNo"
	colStockCode   = "StockCode"
	colDescription = "Description"
	colQuantity    = "Quantity"
	colInvoiceDate = "InvoiceDate"
	colUnitPrice   = "UnitPrice"
	colCustomerID  = "CustomerID"
	colCountry     = "Country"
)

var requiredColumns = []string{colInvoice, colQuantity, colInvoiceDate, colUnitPrice, colCustomerID}

var dateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ReadFile reads a CSV export from disk, showing load progress on stderr.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat csv: %w", err)
	}
	bar := progressbar.DefaultBytes(info.Size(), "reading transactions")
	defer bar.Finish()

	return Read(io.TeeReader(f, bar))
}

// Read parses CSV rows from r. The first row must be a header naming at
// least the invoice, quantity, date, price and customer columns.
func Read(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		raw, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		txn, ok := parseRow(raw, cols)
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", name)
		}
	}
	return cols, nil
}

func parseRow(raw []string, cols map[string]int) (models.TransactionRecord, bool) {
	field := func(name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[i])
	}

	customer := field(colCustomerID)
	invoice := field(colInvoice)
	if customer == "" || invoice == "" {
		return models.TransactionRecord{}, false
	}
	qty, err := strconv.Atoi(field(colQuantity))
	if err != nil || qty <= 0 {
		return models.TransactionRecord{}, false
	}
	price, err := strconv.ParseFloat(field(colUnitPrice), 64)
	if err != nil || price <= 0 {
		return models.TransactionRecord{}, false
	}
	at, ok := parseDate(field(colInvoiceDate))
	if !ok {
		return models.TransactionRecord{}, false
	}

	return models.TransactionRecord{
		CustomerID:  customer,
		InvoiceID:   invoice,
		InvoiceDate: at,
		Quantity:    qty,
		UnitPrice:   price,
		StockCode:   field(colStockCode),
		Description: field(colDescription),
		Country:     field(colCountry),
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if at, err := time.Parse(layout, s); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}
