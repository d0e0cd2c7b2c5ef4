package models

// PaymentDateLayout is the date format used by ledger records and queries.
const PaymentDateLayout = "2006-01-02"

// PaymentRecord is one settled table: appended to the ledger when a table
// is cleared, never updated or deleted afterwards.
type PaymentRecord struct {
	Date        string  `json:"date"` // PaymentDateLayout
	Server      string  `json:"server"`
	TableNumber int     `json:"tableNumber"`
	Payment     float64 `json:"payment"`
}
