package rfm

import (
	"errors"
	"testing"
	"time"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

var day0 = time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

func tx(customer, invoice string, at time.Time, qty int, price float64) models.TransactionRecord {
	return models.TransactionRecord{
		CustomerID:  customer,
		InvoiceID:   invoice,
		InvoiceDate: at,
		Quantity:    qty,
		UnitPrice:   price,
	}
}

func TestAggregate_TwoCustomerScenario(t *testing.T) {
	txns := []models.TransactionRecord{
		tx("C1", "inv1", day0, 2, 5),
		tx("C1", "inv1", day0, 1, 5),
		tx("C2", "inv2", day0.AddDate(0, 0, 10), 1, 1000),
	}

	snap, err := Aggregate(txns, Options{ReferenceDate: day0.AddDate(0, 0, 11)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Metrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(snap.Metrics))
	}

	c1 := snap.Metrics[0]
	if c1.CustomerID != "C1" || c1.RecencyDays != 11 || c1.Frequency != 1 || c1.Monetary != 15 {
		t.Fatalf("C1 = %+v, want {C1 11 1 15}", c1)
	}
	c2 := snap.Metrics[1]
	if c2.CustomerID != "C2" || c2.RecencyDays != 1 || c2.Frequency != 1 || c2.Monetary != 1000 {
		t.Fatalf("C2 = %+v, want {C2 1 1 1000}", c2)
	}
}

func TestAggregate_DerivedReferenceDate(t *testing.T) {
	txns := []models.TransactionRecord{
		tx("C1", "inv1", day0, 1, 10),
		tx("C2", "inv2", day0.AddDate(0, 0, 10), 1, 10),
	}

	snap, err := Aggregate(txns, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := day0.AddDate(0, 0, 11)
	if !snap.ReferenceDate.Equal(want) {
		t.Fatalf("reference date = %v, want %v (latest invoice + 1 day)", snap.ReferenceDate, want)
	}
	// The most recent customer is exactly one day from the derived reference.
	if snap.Metrics[1].RecencyDays != 1 {
		t.Fatalf("C2 recency = %d, want 1", snap.Metrics[1].RecencyDays)
	}
}

func TestAggregate_FrequencyCountsDistinctInvoices(t *testing.T) {
	txns := []models.TransactionRecord{
		tx("C1", "inv1", day0, 1, 2),
		tx("C1", "inv1", day0, 3, 4), // same invoice, second line item
		tx("C1", "inv2", day0.AddDate(0, 0, 1), 1, 6),
		tx("C1", "inv3", day0.AddDate(0, 0, 2), 1, 8),
	}

	snap, err := Aggregate(txns, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := snap.Metrics[0]
	if m.Frequency != 3 {
		t.Fatalf("frequency = %d, want 3 (repeated lines in one invoice count once)", m.Frequency)
	}
	if m.Monetary != 2+12+6+8 {
		t.Fatalf("monetary = %v, want 28", m.Monetary)
	}
}

func TestAggregate_SingleLineCustomer(t *testing.T) {
	snap, err := Aggregate([]models.TransactionRecord{tx("C9", "inv9", day0, 1, 3.5)}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := snap.Metrics[0]
	if m.Frequency != 1 || m.Monetary != 3.5 || m.RecencyDays != 1 {
		t.Fatalf("metrics = %+v, want frequency 1, monetary 3.5, recency 1", m)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	_, err := Aggregate(nil, Options{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAggregate_ReferenceDateMustBeStrictlyAfter(t *testing.T) {
	txns := []models.TransactionRecord{
		tx("C1", "inv1", day0, 1, 10),
		tx("C2", "inv2", day0.AddDate(0, 0, 5), 1, 10),
	}

	// Equal to the latest invoice date: rejected.
	_, err := Aggregate(txns, Options{ReferenceDate: day0.AddDate(0, 0, 5)})
	if !errors.Is(err, ErrInvalidReferenceDate) {
		t.Fatalf("expected ErrInvalidReferenceDate for equal date, got %v", err)
	}

	// Before the latest invoice date: rejected.
	_, err = Aggregate(txns, Options{ReferenceDate: day0.AddDate(0, 0, 3)})
	if !errors.Is(err, ErrInvalidReferenceDate) {
		t.Fatalf("expected ErrInvalidReferenceDate for earlier date, got %v", err)
	}
}

func TestAggregate_SnapshotSortedByCustomerID(t *testing.T) {
	txns := []models.TransactionRecord{
		tx("zeta", "i1", day0, 1, 1),
		tx("alpha", "i2", day0, 1, 1),
		tx("mike", "i3", day0, 1, 1),
	}

	snap, err := Aggregate(txns, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "mike", "zeta"}
	for i, id := range want {
		if snap.Metrics[i].CustomerID != id {
			t.Fatalf("snapshot order = %v at %d, want %v", snap.Metrics[i].CustomerID, i, id)
		}
	}
}
