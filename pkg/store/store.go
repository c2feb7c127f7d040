// Package store persists completed pipeline runs and their segments.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/rfm"
)

// Run is one persisted pipeline execution.
type Run struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Source        string    `json:"source"`
	Customers     int       `json:"customers"`
	Transactions  int       `json:"transactions"`
	SkippedRows   int       `json:"skipped_rows"`
	ReferenceDate time.Time `json:"reference_date"`
	TotalRevenue  float64   `json:"total_revenue"`
	CreatedAt     time.Time `json:"created_at"`
}

// SegmentRecord is one customer's metrics, scores and segment within a run.
type SegmentRecord struct {
	ID          uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	RunID       string    `json:"run_id" gorm:"index;size:36;not null"`
	CustomerID  string    `json:"customer_id" gorm:"index;not null"`
	RecencyDays int       `json:"recency_days"`
	Frequency   int       `json:"frequency"`
	Monetary    float64   `json:"monetary"`
	RScore      int       `json:"r_score"`
	FScore      int       `json:"f_score"`
	MScore      int       `json:"m_score"`
	Code        string    `json:"code" gorm:"size:3;index"`
	Tier        string    `json:"tier" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store wraps the gorm handle behind the run queries.
type Store struct {
	db *gorm.DB
}

// Open connects with the named driver (sqlite or mysql) and migrates the
// schema.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Run{}, &SegmentRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// RecordsFromResult flattens a pipeline result into segment rows. The
// result's slices are parallel, one entry per customer.
func RecordsFromResult(res *rfm.Result) []SegmentRecord {
	records := make([]SegmentRecord, len(res.Segments))
	for i, seg := range res.Segments {
		m := res.Metrics[i]
		sc := res.Scores[i]
		records[i] = SegmentRecord{
			CustomerID:  seg.CustomerID,
			RecencyDays: m.RecencyDays,
			Frequency:   m.Frequency,
			Monetary:    m.Monetary,
			RScore:      sc.RScore,
			FScore:      sc.FScore,
			MScore:      sc.MScore,
			Code:        seg.Code,
			Tier:        string(seg.Tier),
		}
	}
	return records
}

// SaveRun persists a run and its segments atomically and returns the run id.
func (s *Store) SaveRun(run Run, records []SegmentRecord) (string, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		for i := range records {
			records[i].RunID = run.ID
			records[i].CreatedAt = run.CreatedAt
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(&records, 500).Error
	})
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return run.ID, nil
}

// Runs lists persisted runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	if err := s.db.Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun fetches one run by id. A missing id surfaces gorm.ErrRecordNotFound.
func (s *Store) GetRun(id string) (*Run, error) {
	var run Run
	if err := s.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// SegmentsByRun pages through a run's segments in customer order, optionally
// filtered by tier. It returns the page and the total matching count.
func (s *Store) SegmentsByRun(runID, tier string, page, pageSize int) ([]SegmentRecord, int64, error) {
	q := s.db.Where("run_id = ?", runID)
	if tier != "" {
		q = q.Where("tier = ?", tier)
	}
	var total int64
	if err := q.Model(&SegmentRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []SegmentRecord
	if err := q.Order("customer_id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// TierCounts summarizes a run's population by tier.
func (s *Store) TierCounts(runID string) (map[string]int64, error) {
	type row struct {
		Tier  string
		Count int64
	}
	var rows []row
	err := s.db.Model(&SegmentRecord{}).
		Select("tier, count(*) as count").
		Where("run_id = ?", runID).
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Tier] = r.Count
	}
	return counts, nil
}

// LatestSegmentForCustomer returns the customer's segment from the most
// recent run that includes them.
func (s *Store) LatestSegmentForCustomer(customerID string) (*SegmentRecord, error) {
	var rec SegmentRecord
	err := s.db.Joins("JOIN runs ON runs.id = segment_records.run_id").
		Where("segment_records.customer_id = ?", customerID).
		Order("runs.created_at desc").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
