// Package history persists prior estimation sessions so a customer's form
// state can be reloaded, searched by name, and aged out. History is a cache
// of form state only; the calculation engine never reads from it.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/young626-jang/LTV-Calculator/internal/ltv"
)

// ErrIncomplete marks a record missing the fields history is keyed on. Saves
// of incomplete records are rejected rather than silently dropped.
var ErrIncomplete = errors.New("history: record requires customer name and address")

// Record is one saved session.
type Record struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	CustomerName  string    `json:"customerName"`
	Address       string    `json:"address"`
	ValuationText string    `json:"valuationText"`
	AreaText      string    `json:"areaText"`
	Ratio1        string    `json:"ratio1"`
	Ratio2        string    `json:"ratio2"`
	ReportText    string    `json:"reportText"`
}

// Store saves and recalls session records.
type Store interface {
	// Save persists a record. With overwrite set, prior records for the
	// same customer name and address are replaced.
	Save(ctx context.Context, rec Record, overwrite bool) (Record, error)

	// LoadByCustomer returns the most recent record for the exact
	// customer name.
	LoadByCustomer(ctx context.Context, name string) (Record, bool, error)

	// Customers lists the distinct customer names, sorted.
	Customers(ctx context.Context) ([]string, error)

	// SearchByKeyword lists the distinct customer names containing the
	// keyword, sorted. An empty keyword matches nothing.
	SearchByKeyword(ctx context.Context, keyword string) ([]string, error)

	// CleanupOlderThan removes records with a timestamp before the cutoff
	// and reports how many were removed.
	CleanupOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// RecordFromReport captures the form state behind a computed report.
func RecordFromReport(report ltv.Report) Record {
	ratios := ltv.SelectRatios(report.Request.Ratios)
	rec := Record{
		CustomerName:  strings.TrimSpace(report.Request.CustomerName),
		Address:       strings.TrimSpace(report.Request.Address),
		ValuationText: report.Request.ValuationText,
		AreaText:      report.Request.AreaText,
		ReportText:    report.Text,
	}
	if len(ratios) > 0 {
		rec.Ratio1 = fmt.Sprintf("%d", ratios[0])
	}
	if len(ratios) > 1 {
		rec.Ratio2 = fmt.Sprintf("%d", ratios[1])
	}
	return rec
}

// RetentionCutoff converts a retention window in days into the cleanup
// cutoff instant.
func RetentionCutoff(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}

// normalize fills the generated fields and validates the key fields.
func normalize(rec Record) (Record, error) {
	rec.CustomerName = strings.TrimSpace(rec.CustomerName)
	rec.Address = strings.TrimSpace(rec.Address)
	if rec.CustomerName == "" || rec.Address == "" {
		return rec, ErrIncomplete
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	return rec, nil
}
