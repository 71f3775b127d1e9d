package medication

import "context"

type Repository interface {
	Create(ctx context.Context, m *Medication) error
	GetByID(ctx context.Context, id int64) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	// UpdateStock sets an absolute quantity, not a delta.
	UpdateStock(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Medication, int, error)
}
