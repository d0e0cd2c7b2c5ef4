package ledger

import (
	"encoding/json"
	"os"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Ledger is the append-only record of settled tables, mirrored to a JSON
// file after every append. The whole file is rewritten each time; readers
// must tolerate full-rewrite semantics.
type Ledger struct {
	path    string
	records []models.PaymentRecord
	logger  *logger.Logger
}

// New opens the ledger at path, loading any existing history. A missing or
// unreadable file starts an empty ledger and rewrites the file.
func New(path string, log *logger.Logger) *Ledger {
	l := &Ledger{path: path, logger: log}

	data, err := os.ReadFile(path)
	if err != nil || json.Unmarshal(data, &l.records) != nil {
		l.records = nil
		l.flush()
	}
	return l
}

// Append records one settled table and synchronously rewrites the file. A
// write failure is a durability gap, not a consistency gap: the in-memory
// record stays committed and the failure is logged.
func (l *Ledger) Append(rec models.PaymentRecord) {
	l.records = append(l.records, rec)
	l.flush()
}

// Records returns a copy of the full payment history.
func (l *Ledger) Records() []models.PaymentRecord {
	return append([]models.PaymentRecord(nil), l.records...)
}

// QueryByDate returns every record whose date exactly matches the query
// (format models.PaymentDateLayout), with a running total of the payments.
func (l *Ledger) QueryByDate(date string) ([]models.PaymentRecord, float64) {
	var matched []models.PaymentRecord
	total := 0.0
	for _, rec := range l.records {
		if rec.Date == date {
			matched = append(matched, rec)
			total += rec.Payment
		}
	}
	return matched, total
}

func (l *Ledger) flush() {
	records := l.records
	if records == nil {
		records = []models.PaymentRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		l.logger.Error("ledger_write_failed", "Failed to encode payment ledger", "", err, nil)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		l.logger.Error("ledger_write_failed", "Unable to update payments file", "", err, map[string]interface{}{
			"path": l.path,
		})
	}
}
