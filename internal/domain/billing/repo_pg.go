package billing

import (
	"context"

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

const incomeCols = `id, amount, source, patient_id, doctor_id, earned_at, description`

func (r *repoPG) Create(ctx context.Context, in *Income) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO income (amount, source, patient_id, doctor_id, description)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, earned_at`,
		in.Amount, in.Source, in.PatientID, in.DoctorID, in.Description,
	).Scan(&in.ID, &in.EarnedAt)
	return db.Translate(err)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Income, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM income`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+incomeCols+` FROM income ORDER BY earned_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Income
	for rows.Next() {
		var in Income
		if err := rows.Scan(&in.ID, &in.Amount, &in.Source, &in.PatientID,
			&in.DoctorID, &in.EarnedAt, &in.Description); err != nil {
			return nil, 0, err
		}
		items = append(items, &in)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Total(ctx context.Context) (float64, error) {
	var sum float64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM income`).Scan(&sum)
	return sum, err
}
