package surgery

import "time"

// Operation is a surgical procedure. It cascades with its patient but the
// doctor reference is unconstrained; only the status mutates after creation.
type Operation struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	PatientID   int64     `db:"patient_id" json:"patient_id"`
	DoctorID    int64     `db:"doctor_id" json:"doctor_id"`
	PerformedAt time.Time `db:"performed_at" json:"performed_at"`
	Status      string    `db:"status" json:"status"`
	Cost        *float64  `db:"cost" json:"cost,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

var validStatuses = map[string]bool{
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

func ValidStatus(s string) bool { return validStatuses[s] }
