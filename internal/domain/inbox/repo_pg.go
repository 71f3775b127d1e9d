package inbox

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

const messageCols = `id, sender_id, receiver_id, subject, content, is_read, created_at`

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Content,
		&m.IsRead, &m.CreatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Message) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO message (sender_id, receiver_id, subject, content)
		VALUES ($1,$2,$3,$4)
		RETURNING id, is_read, created_at`,
		m.SenderID, m.ReceiverID, m.Subject, m.Content,
	).Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	return db.Translate(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Message, error) {
	m, err := scanMessage(r.conn(ctx).QueryRow(ctx,
		`SELECT `+messageCols+` FROM message WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("message %d", id)
	}
	return m, err
}

func (r *repoPG) ListSent(ctx context.Context, doctorID int64) ([]*Message, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+messageCols+` FROM message WHERE sender_id = $1 ORDER BY created_at DESC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *repoPG) ListReceived(ctx context.Context, doctorID int64) ([]*Message, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+messageCols+` FROM message WHERE receiver_id = $1 ORDER BY created_at DESC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (r *repoPG) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE message SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("message %d", id)
	}
	return nil
}

func collectMessages(rows pgx.Rows) ([]*Message, error) {
	var items []*Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
