package medication

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

const medCols = `id, name, dosage, description, stock_quantity, unit_price, expiry_date, created_at`

func scanMed(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.Name, &m.Dosage, &m.Description, &m.StockQuantity,
		&m.UnitPrice, &m.ExpiryDate, &m.CreatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medication (name, dosage, description, stock_quantity, unit_price, expiry_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		m.Name, m.Dosage, m.Description, m.StockQuantity, m.UnitPrice, m.ExpiryDate,
	).Scan(&m.ID, &m.CreatedAt)
	return db.Translate(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Medication, error) {
	m, err := scanMed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medication WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("medication %d", id)
	}
	return m, err
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET name=$2, dosage=$3, description=$4, stock_quantity=$5,
			unit_price=$6, expiry_date=$7
		WHERE id = $1`,
		m.ID, m.Name, m.Dosage, m.Description, m.StockQuantity, m.UnitPrice, m.ExpiryDate)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("medication %d", m.ID)
	}
	return nil
}

func (r *repoPG) UpdateStock(ctx context.Context, id int64, quantity int) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE medication SET stock_quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("medication %d", id)
	}
	return nil
}

// Delete is unconditional: prescriptions store medication names as free text,
// so there is no reference to check.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("medication %d", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medCols+` FROM medication ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}
