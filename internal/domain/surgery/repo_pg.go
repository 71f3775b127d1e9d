package surgery

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/apperror"
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

const opCols = `id, name, patient_id, doctor_id, performed_at, status, cost, notes, created_at`

func scanOp(row pgx.Row) (*Operation, error) {
	var op Operation
	err := row.Scan(&op.ID, &op.Name, &op.PatientID, &op.DoctorID, &op.PerformedAt,
		&op.Status, &op.Cost, &op.Notes, &op.CreatedAt)
	return &op, err
}

func (r *repoPG) Create(ctx context.Context, op *Operation) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO operation (name, patient_id, doctor_id, performed_at, status, cost, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`,
		op.Name, op.PatientID, op.DoctorID, op.PerformedAt, op.Status, op.Cost, op.Notes,
	).Scan(&op.ID, &op.CreatedAt)
	return db.Translate(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Operation, error) {
	op, err := scanOp(r.conn(ctx).QueryRow(ctx,
		`SELECT `+opCols+` FROM operation WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("operation %d", id)
	}
	return op, err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE operation SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("operation %d", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Operation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM operation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+opCols+` FROM operation ORDER BY performed_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Operation, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+opCols+` FROM operation WHERE patient_id = $1 ORDER BY performed_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Operation, error) {
	var items []*Operation
	for rows.Next() {
		op, err := scanOp(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, op)
	}
	return items, rows.Err()
}
