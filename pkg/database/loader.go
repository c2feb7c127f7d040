// Package database loads transaction rows from a SQL table. It accepts
// mariadb://, mysql:// and postgres:// DSNs and applies the same input
// contract as the CSV reader: rows with a missing customer or invoice id,
// a NULL date, or a non-positive quantity or unit price are skipped and
// counted.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open connects to the database behind dsn and applies the pool settings
// suited to a single batch run.
func Open(dsn string) (*sql.DB, error) {
	driver, nativeDSN, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, nativeDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// normalizeDSN maps a URL-style DSN onto a database/sql driver name and its
// native DSN format. mariadb:// and mysql:// URLs become go-sql-driver DSNs
// with dates parsed in UTC; postgres:// URLs pass through as lib/pq accepts
// them natively. Anything else is assumed to already be a MySQL-native DSN.
func normalizeDSN(dsn string) (driver, native string, err error) {
	switch {
	case strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		name := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || name == "" {
			return "", "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		native := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, name)
		return "mysql", native, nil
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	default:
		return "mysql", dsn, nil
	}
}

// LoadTransactions reads every row of table, showing progress on stderr.
// It returns the rows that passed the input contract and the count of rows
// that did not.
func LoadTransactions(ctx context.Context, db *sql.DB, table string) ([]models.TransactionRecord, int, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, 0, fmt.Errorf("invalid table name %q", table)
	}

	var total int64
	countQ := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := db.QueryRowContext(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rows: %w", err)
	}
	bar := progressbar.Default(total, "loading transactions")

	q := fmt.Sprintf(`
		SELECT InvoiceNo, StockCode, Description, Quantity, InvoiceDate, UnitPrice, CustomerID, Country
		FROM %s
	`, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var (
		txns    []models.TransactionRecord
		skipped int
	)
	for rows.Next() {
		var (
			invoice, stock, desc sql.NullString
			qty                  sql.NullInt64
			at                   sql.NullTime
			price                sql.NullFloat64
			customer, country    sql.NullString
		)
		if err := rows.Scan(&invoice, &stock, &desc, &qty, &at, &price, &customer, &country); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		_ = bar.Add(1)

		txn, ok := recordFromRow(invoice, stock, desc, qty, at, price, customer, country)
		if !ok {
			skipped++
			continue
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, skipped, nil
}

func recordFromRow(invoice, stock, desc sql.NullString, qty sql.NullInt64, at sql.NullTime, price sql.NullFloat64, customer, country sql.NullString) (models.TransactionRecord, bool) {
	customerID := strings.TrimSpace(customer.String)
	invoiceID := strings.TrimSpace(invoice.String)
	if !customer.Valid || customerID == "" || !invoice.Valid || invoiceID == "" {
		return models.TransactionRecord{}, false
	}
	if !at.Valid || !qty.Valid || qty.Int64 <= 0 || !price.Valid || price.Float64 <= 0 {
		return models.TransactionRecord{}, false
	}
	return models.TransactionRecord{
		CustomerID:  customerID,
		InvoiceID:   invoiceID,
		InvoiceDate: at.Time.UTC(),
		Quantity:    int(qty.Int64),
		UnitPrice:   price.Float64,
		StockCode:   strings.TrimSpace(stock.String),
		Description: strings.TrimSpace(desc.String),
		Country:     strings.TrimSpace(country.String),
	}, true
}
