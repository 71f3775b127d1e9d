package documents

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id int64) (*Document, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Document, int, error)
}

// The document table carries no FK for its optional references, so the
// service checks them against these directories before writing.
type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type DoctorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
