package billing

import "context"

// Repository is append-and-read only; the ledger has no update or delete.
type Repository interface {
	Create(ctx context.Context, in *Income) error
	List(ctx context.Context, limit, offset int) ([]*Income, int, error)
	// Total sums the whole ledger; an empty ledger totals 0, not an error.
	Total(ctx context.Context) (float64, error)
}

// The income table carries no FK for its optional references, so the service
// checks them against these directories before writing.
type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type DoctorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
