package appointment

import "context"

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*Prescription, error)
	// ListByPatient flattens prescriptions across all of the patient's
	// appointments.
	ListByPatient(ctx context.Context, patientID int64) ([]*Prescription, error)
}

// PatientDirectory and DoctorDirectory are the write-time existence checks.
// doctor_id carries no FK constraint, so this check is the only guard against
// booking against a doctor that never existed.
type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type DoctorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
