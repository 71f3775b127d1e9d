package appointment

import "time"

// Appointment is created with status Pending regardless of caller input.
// After creation only the status mutates.
type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	VisitDate time.Time `db:"visit_date" json:"visit_date"`
	VisitTime string    `db:"visit_time" json:"visit_time"`
	Diagnosis *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	Status    string    `db:"status" json:"status"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	DoctorID  int64     `db:"doctor_id" json:"doctor_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Prescription hangs off an appointment and dies with it. Medication is free
// text, not a reference into the medication inventory.
type Prescription struct {
	ID            int64   `db:"id" json:"id"`
	Medication    string  `db:"medication" json:"medication"`
	Dosage        string  `db:"dosage" json:"dosage"`
	Notes         *string `db:"notes" json:"notes,omitempty"`
	AppointmentID int64   `db:"appointment_id" json:"appointment_id"`
}

const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
	StatusCompleted = "Completed"
)

// Any status may follow any other; the enum is closed but the transition
// graph is permissive, so Completed back to Pending is legal.
var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusAccepted:  true,
	StatusRejected:  true,
	StatusCompleted: true,
}

func ValidStatus(s string) bool { return validStatuses[s] }
