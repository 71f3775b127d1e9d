package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type RecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, id int64) (*MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*MedicalRecord, error)
}

// VisitSource supplies a patient's appointments and the flattened set of
// prescriptions across them. Wired in main from the appointment domain.
type VisitSource interface {
	VisitsByPatient(ctx context.Context, patientID int64) ([]ProfileAppointment, []ProfilePrescription, error)
}
