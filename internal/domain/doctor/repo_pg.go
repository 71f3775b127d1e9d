package doctor

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

const doctorCols = `id, email, password_hash, name, specialization, phone, hospital,
	experience_years, total_patients, total_reviews, bio`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Email, &d.PasswordHash, &d.Name, &d.Specialization,
		&d.Phone, &d.Hospital, &d.ExperienceYears, &d.TotalPatients,
		&d.TotalReviews, &d.Bio)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (email, password_hash, name, specialization, phone,
			hospital, experience_years, total_patients, total_reviews, bio)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		d.Email, d.PasswordHash, d.Name, d.Specialization, d.Phone, d.Hospital,
		d.ExperienceYears, d.TotalPatients, d.TotalReviews, d.Bio,
	).Scan(&d.ID)
	return db.Translate(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("doctor %d", id)
	}
	return d, err
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("doctor %s", email)
	}
	return d, err
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET email=$2, name=$3, specialization=$4, phone=$5,
			hospital=$6, experience_years=$7, total_patients=$8,
			total_reviews=$9, bio=$10
		WHERE id = $1`,
		d.ID, d.Email, d.Name, d.Specialization, d.Phone, d.Hospital,
		d.ExperienceYears, d.TotalPatients, d.TotalReviews, d.Bio)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor %d", d.ID)
	}
	return nil
}

// Delete removes the doctor and its availability rows. Appointments that
// reference the doctor stay in place.
func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor %d", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctor WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repoPG) ListAvailableOn(ctx context.Context, weekday int) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+doctorCols+`
		FROM doctor d
		JOIN doctor_availability a ON a.doctor_id = d.id
		WHERE a.day_of_week = $1
		ORDER BY d.name`, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

type availabilityRepoPG struct{ pool *pgxpool.Pool }

func NewAvailabilityRepoPG(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepoPG{pool: pool}
}

func (r *availabilityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Replace is delete-all-then-insert inside one unit of work, not a per-row
// upsert. Duplicate days would trip the (doctor_id, day_of_week) uniqueness
// constraint; the service dedupes before calling.
func (r *availabilityRepoPG) Replace(ctx context.Context, doctorID int64, days []int) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx,
			`DELETE FROM doctor_availability WHERE doctor_id = $1`, doctorID); err != nil {
			return db.Translate(err)
		}
		for _, day := range days {
			if _, err := r.conn(ctx).Exec(ctx,
				`INSERT INTO doctor_availability (doctor_id, day_of_week) VALUES ($1,$2)`,
				doctorID, day); err != nil {
				return db.Translate(err)
			}
		}
		return nil
	})
}

func (r *availabilityRepoPG) DaysFor(ctx context.Context, doctorID int64) ([]int, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT day_of_week FROM doctor_availability WHERE doctor_id = $1 ORDER BY day_of_week`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
