package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/burakcan/atelier/internal/telemetry/tracing"
)

var _ jobsRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, fields JobFields) (*Job, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobsRepo.insert")
	defer span.End()

	j := &Job{
		Title:       fields.Title,
		Department:  fields.Department,
		Location:    fields.Location,
		Type:        fields.Type,
		Description: fields.Description,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, department, location, type, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
		fields.Title, fields.Department, fields.Location, fields.Type, fields.Description,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return j, nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (*Job, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobsRepo.getByID")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	var j Job
	err := r.db.QueryRow(ctx,
		`SELECT id, title, department, location, type, description, created_at, updated_at
			FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Type, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return &j, nil
}

func (r *Repo) Update(ctx context.Context, id int, fields JobFields) (*Job, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobsRepo.update")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	var j Job
	err := r.db.QueryRow(ctx,
		`UPDATE jobs
			SET title = $1, department = $2, location = $3, type = $4, description = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING id, title, department, location, type, description, created_at, updated_at`,
		fields.Title, fields.Department, fields.Location, fields.Type, fields.Description, id,
	).Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Type, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update job %d: %w", id, err)
	}
	return &j, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobsRepo.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	if _, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	return nil
}

// ListAll returns jobs oldest first, the order the careers page renders them.
func (r *Repo) ListAll(ctx context.Context) ([]*Job, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobsRepo.listAll")
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, title, department, location, type, description, created_at, updated_at
			FROM jobs ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var all []*Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Department, &j.Location, &j.Type, &j.Description, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		all = append(all, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs rows: %w", err)
	}
	return all, nil
}
