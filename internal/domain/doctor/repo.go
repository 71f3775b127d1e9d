package doctor

import "context"

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// ListAvailableOn returns every doctor whose availability set contains
	// the given weekday (Monday=0).
	ListAvailableOn(ctx context.Context, weekday int) ([]*Doctor, error)
}

type AvailabilityRepository interface {
	// Replace swaps the doctor's whole availability set in one transaction;
	// a reader never observes the doctor with zero days mid-update.
	Replace(ctx context.Context, doctorID int64, days []int) error
	DaysFor(ctx context.Context, doctorID int64) ([]int, error)
}

// VisitSource supplies a doctor's appointments for the profile read. Wired
// in main from the appointment domain.
type VisitSource interface {
	VisitsByDoctor(ctx context.Context, doctorID int64) ([]ProfileAppointment, error)
}
