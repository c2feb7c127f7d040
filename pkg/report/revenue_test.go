package report

import (
	"testing"
	"time"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

var noon = time.Date(2011, 12, 5, 12, 0, 0, 0, time.UTC)

func rec(customer, stock, desc string, at time.Time, qty int, price float64) models.TransactionRecord {
	return models.TransactionRecord{
		CustomerID:  customer,
		InvoiceID:   "inv-" + customer,
		InvoiceDate: at,
		Quantity:    qty,
		UnitPrice:   price,
		StockCode:   stock,
		Description: desc,
	}
}

func TestTotalRevenue(t *testing.T) {
	txns := []models.TransactionRecord{
		rec("alice", "A1", "MUG", noon, 2, 300),  // 600
		rec("alice", "A2", "BOWL", noon, 1, 500), // 500
		rec("bob", "A1", "MUG", noon, 7, 100),    // 700
	}

	if got := TotalRevenue(txns); got != 1800 {
		t.Fatalf("TotalRevenue = %v, want 1800", got)
	}
	if got := TotalRevenue(nil); got != 0 {
		t.Fatalf("TotalRevenue(nil) = %v, want 0", got)
	}
}

func TestRevenueByCustomer_RanksDescending(t *testing.T) {
	txns := []models.TransactionRecord{
		rec("carol", "A3", "TRAY", noon, 3, 100), // 300
		rec("alice", "A1", "MUG", noon, 2, 300),  // 600
		rec("bob", "A1", "MUG", noon, 7, 100),    // 700
		rec("alice", "A2", "BOWL", noon, 1, 500), // +500 -> 1100
	}

	rows := RevenueByCustomer(txns)
	want := []CustomerRevenue{
		{CustomerID: "alice", Revenue: 1100},
		{CustomerID: "bob", Revenue: 700},
		{CustomerID: "carol", Revenue: 300},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestRevenueByCustomer_TiesOrderByID(t *testing.T) {
	txns := []models.TransactionRecord{
		rec("dave", "A1", "MUG", noon, 7, 100),
		rec("bob", "A1", "MUG", noon, 7, 100),
	}

	rows := RevenueByCustomer(txns)
	if rows[0].CustomerID != "bob" || rows[1].CustomerID != "dave" {
		t.Fatalf("tied ranking = [%s %s], want [bob dave]", rows[0].CustomerID, rows[1].CustomerID)
	}
}

func TestTopCustomers(t *testing.T) {
	txns := []models.TransactionRecord{
		rec("carol", "A3", "TRAY", noon, 3, 100),
		rec("alice", "A1", "MUG", noon, 11, 100),
		rec("bob", "A1", "MUG", noon, 7, 100),
	}

	top := TopCustomers(txns, 2)
	if len(top) != 2 || top[0].CustomerID != "alice" || top[1].CustomerID != "bob" {
		t.Fatalf("TopCustomers(2) = %+v, want alice then bob", top)
	}
	if got := TopCustomers(txns, 10); len(got) != 3 {
		t.Fatalf("TopCustomers(10) returned %d rows, want all 3", len(got))
	}
	if got := TopCustomers(txns, 0); got != nil {
		t.Fatalf("TopCustomers(0) = %+v, want nil", got)
	}
}

func TestBandOf_Thresholds(t *testing.T) {
	cases := []struct {
		revenue float64
		want    Band
	}{
		{1500, BandHigh},
		{1000, BandHigh},
		{999.99, BandMedium},
		{500, BandMedium},
		{499.99, BandLow},
		{0, BandLow},
	}
	for _, c := range cases {
		if got := BandOf(c.revenue, DefaultBandThresholds); got != c.want {
			t.Errorf("BandOf(%v) = %s, want %s", c.revenue, got, c.want)
		}
	}
}

func TestBandsByCustomer(t *testing.T) {
	txns := []models.TransactionRecord{
		rec("alice", "A1", "MUG", noon, 12, 100), // 1200
		rec("bob", "A1", "MUG", noon, 6, 100),    // 600
		rec("carol", "A1", "MUG", noon, 1, 100),  // 100
	}

	bands := BandsByCustomer(txns, DefaultBandThresholds)
	if bands["alice"] != BandHigh || bands["bob"] != BandMedium || bands["carol"] != BandLow {
		t.Fatalf("bands = %+v, want alice High, bob Medium, carol Low", bands)
	}
}
