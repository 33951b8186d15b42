package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/burakcan/atelier/internal/telemetry/tracing"
)

var _ projectsRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, fields ProjectFields) (*Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.insert")
	defer span.End()

	p := &Project{
		Title:       fields.Title,
		Description: fields.Description,
		Image:       fields.Image,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO portfolios (title, description, image)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
		fields.Title, fields.Description, fields.Image,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, id int, fields ProjectFields) (*Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.update")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	var p Project
	err := r.db.QueryRow(ctx,
		`UPDATE portfolios
			SET title = $1, description = $2, image = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING id, title, description, image, created_at, updated_at`,
		fields.Title, fields.Description, fields.Image, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return &p, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project %d: %w", id, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]*Project, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projectsRepo.listAll")
	defer span.End()

	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, image, created_at, updated_at
			FROM portfolios ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var all []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		all = append(all, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects rows: %w", err)
	}
	return all, nil
}
