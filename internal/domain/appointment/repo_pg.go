package appointment

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

const apptCols = `id, visit_date, visit_time, diagnosis, status, patient_id, doctor_id, created_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.VisitDate, &a.VisitTime, &a.Diagnosis, &a.Status,
		&a.PatientID, &a.DoctorID, &a.CreatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (visit_date, visit_time, diagnosis, status, patient_id, doctor_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		a.VisitDate, a.VisitTime, a.Diagnosis, a.Status, a.PatientID, a.DoctorID,
	).Scan(&a.ID, &a.CreatedAt)
	return db.Translate(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	a, err := scanAppt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("appointment %d", id)
	}
	return a, err
}

func (r *repoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("appointment %d", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collect(rows)
	return items, total, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE doctor_id = $1 ORDER BY created_at DESC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM appointment WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const scriptCols = `id, medication, dosage, notes, appointment_id`

func scanScript(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.Medication, &p.Dosage, &p.Notes, &p.AppointmentID)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescription (medication, dosage, notes, appointment_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		p.Medication, p.Dosage, p.Notes, p.AppointmentID,
	).Scan(&p.ID)
	return db.Translate(err)
}

func (r *prescriptionRepoPG) ListByAppointment(ctx context.Context, appointmentID int64) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+scriptCols+` FROM prescription WHERE appointment_id = $1 ORDER BY id`,
		appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScripts(rows)
}

func (r *prescriptionRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.medication, p.dosage, p.notes, p.appointment_id
		FROM prescription p
		JOIN appointment a ON a.id = p.appointment_id
		WHERE a.patient_id = $1
		ORDER BY p.id`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScripts(rows)
}

func collectScripts(rows pgx.Rows) ([]*Prescription, error) {
	var items []*Prescription
	for rows.Next() {
		p, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
