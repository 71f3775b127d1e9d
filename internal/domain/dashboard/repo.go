package dashboard

import "context"

// Repository runs the aggregate queries. Counts and sums come straight from
// the store; no caching, the dashboard reads live data.
type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	CountPatientsByStatus(ctx context.Context, status string) (int, error)
	CountDoctors(ctx context.Context) (int, error)
	CountOperations(ctx context.Context) (int, error)
	TotalIncome(ctx context.Context) (float64, error)
	RecentPatients(ctx context.Context, n int) ([]RecentPatient, error)
	RecentPendingAppointments(ctx context.Context, n int) ([]PendingAppointment, error)
	TopReviewedDoctor(ctx context.Context) (*TopDoctor, error)
	// StatusCountsByMonth buckets patients with the given status by the
	// calendar month of their registration (1=January). Months with no
	// patients are absent from the map.
	StatusCountsByMonth(ctx context.Context, status string) (map[int]int, error)
}
