package patient

import "time"

// Patient is a long-lived mutable record edited in place. Numeric fields are
// nullable: an empty form value stores NULL, never zero.
type Patient struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Age          *int      `db:"age" json:"age,omitempty"`
	Gender       *string   `db:"gender" json:"gender,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	Weight       *float64  `db:"weight" json:"weight,omitempty"`
	Disease      *string   `db:"disease" json:"disease,omitempty"`
	Status       string    `db:"status" json:"status"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// MedicalRecord points at an uploaded file in the blob store. It is owned by
// its patient and removed with it.
type MedicalRecord struct {
	ID        int64  `db:"id" json:"id"`
	Filename  string `db:"filename" json:"filename"`
	PatientID int64  `db:"patient_id" json:"patient_id"`
}

const (
	StatusActive    = "Active"
	StatusRecovered = "Recovered"
	StatusDeceased  = "Deceased"
)

var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusRecovered: true,
	StatusDeceased:  true,
}

// ValidStatus reports whether s is one of the three patient states.
func ValidStatus(s string) bool { return validStatuses[s] }

// ProfileAppointment and ProfilePrescription are the visit history shapes a
// profile read embeds. They are filled by an adapter over the appointment
// domain, so this package never imports it.
type ProfileAppointment struct {
	ID        int64   `json:"id"`
	VisitDate string  `json:"visit_date"`
	VisitTime string  `json:"visit_time"`
	Diagnosis *string `json:"diagnosis,omitempty"`
	Status    string  `json:"status"`
	DoctorID  int64   `json:"doctor_id"`
}

type ProfilePrescription struct {
	ID            int64   `json:"id"`
	Medication    string  `json:"medication"`
	Dosage        string  `json:"dosage"`
	Notes         *string `json:"notes,omitempty"`
	AppointmentID int64   `json:"appointment_id"`
}

// Profile assembles a patient with its visit history. Prescriptions are the
// flattened union across all of the patient's appointments.
type Profile struct {
	Patient       *Patient              `json:"patient"`
	Appointments  []ProfileAppointment  `json:"appointments"`
	Prescriptions []ProfilePrescription `json:"prescriptions"`
	Records       []*MedicalRecord      `json:"records"`
}
