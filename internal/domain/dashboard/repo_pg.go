package dashboard

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patient`)
}

func (r *repoPG) CountPatientsByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patient WHERE status = $1`, status)
}

func (r *repoPG) CountDoctors(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM doctor`)
}

func (r *repoPG) CountOperations(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM operation`)
}

func (r *repoPG) TotalIncome(ctx context.Context) (float64, error) {
	var sum float64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM income`).Scan(&sum)
	return sum, err
}

func (r *repoPG) RecentPatients(ctx context.Context, n int) ([]RecentPatient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, disease, status, registered_at
		FROM patient ORDER BY registered_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecentPatient
	for rows.Next() {
		var p RecentPatient
		if err := rows.Scan(&p.ID, &p.Name, &p.Disease, &p.Status, &p.RegisteredAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) RecentPendingAppointments(ctx context.Context, n int) ([]PendingAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, visit_date, visit_time, patient_id, doctor_id, created_at
		FROM appointment WHERE status = 'Pending'
		ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PendingAppointment
	for rows.Next() {
		var a PendingAppointment
		if err := rows.Scan(&a.ID, &a.VisitDate, &a.VisitTime, &a.PatientID,
			&a.DoctorID, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) StatusCountsByMonth(ctx context.Context, status string) (map[int]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT EXTRACT(MONTH FROM registered_at)::int, COUNT(*)
		FROM patient WHERE status = $1 GROUP BY 1`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[int]int)
	for rows.Next() {
		var month, n int
		if err := rows.Scan(&month, &n); err != nil {
			return nil, err
		}
		counts[month] = n
	}
	return counts, rows.Err()
}

// TopReviewedDoctor returns nil, nil when no doctors exist.
func (r *repoPG) TopReviewedDoctor(ctx context.Context) (*TopDoctor, error) {
	var d TopDoctor
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, total_reviews
		FROM doctor ORDER BY total_reviews DESC LIMIT 1`).Scan(&d.ID, &d.Name, &d.TotalReviews)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
