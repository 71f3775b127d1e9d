package surgery

import "context"

type Repository interface {
	Create(ctx context.Context, op *Operation) error
	GetByID(ctx context.Context, id int64) (*Operation, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, limit, offset int) ([]*Operation, int, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Operation, error)
}

type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type DoctorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
