package billing

import "time"

// Income is an append-only ledger row. Patient and doctor references are
// optional and deliberately unconstrained: a deleted party must not erase
// historical revenue.
type Income struct {
	ID          int64     `db:"id" json:"id"`
	Amount      float64   `db:"amount" json:"amount"`
	Source      *string   `db:"source" json:"source,omitempty"`
	PatientID   *int64    `db:"patient_id" json:"patient_id,omitempty"`
	DoctorID    *int64    `db:"doctor_id" json:"doctor_id,omitempty"`
	EarnedAt    time.Time `db:"earned_at" json:"earned_at"`
	Description *string   `db:"description" json:"description,omitempty"`
}
