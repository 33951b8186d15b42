package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/burakcan/atelier/internal/telemetry/tracing"
)

var _ messagesRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, name, email, message string) (*Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contactRepo.add")
	defer span.End()

	m := &Message{
		Name:    name,
		Email:   email,
		Message: message,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, message)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
		name, email, message,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	return m, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]*Message, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contactRepo.listAll")
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, message, created_at
			FROM contact_messages ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var all []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message row: %w", err)
		}
		all = append(all, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contact messages rows: %w", err)
	}
	return all, nil
}
