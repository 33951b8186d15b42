package blog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/burakcan/atelier/internal/telemetry/tracing"
)

var _ blogRepo = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Insert(ctx context.Context, fields NewBlogFields) (*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.Insert")
	defer span.End()

	b := &Blog{
		Title:    fields.Title,
		Content:  fields.Content,
		ImageURL: fields.ImageURL,
		AuthorID: fields.AuthorID,
	}

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO blogs (title, content, image_url, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, created_at, updated_at;`,
		fields.Title, fields.Content, fields.ImageURL, fields.AuthorID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.GetByID")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	var b Blog
	err := r.db.QueryRow(
		ctx,
		`SELECT id, title, content, image_url, author_id, created_at, updated_at
			FROM blogs WHERE id = $1;`,
		id,
	).Scan(
		&b.ID, &b.Title, &b.Content, &b.ImageURL,
		&b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Update refreshes title, content, image and the updated_at timestamp.
// The author and created_at never change.
func (r *Repo) Update(ctx context.Context, id int, fields UpdateBlogFields) (*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.Update")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	var b Blog
	err := r.db.QueryRow(
		ctx,
		`UPDATE blogs SET title = $1, content = $2, image_url = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING id, title, content, image_url, author_id, created_at, updated_at;`,
		fields.Title, fields.Content, fields.ImageURL, id,
	).Scan(
		&b.ID, &b.Title, &b.Content, &b.ImageURL,
		&b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.Delete")
	span.SetAttributes(attribute.Int("id", id))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		log.Tracef("blog %d not deleted, no such row", id)
		return false, nil
	}
	return true, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]*Blog, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "blogRepo.ListAll")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, content, image_url, author_id, created_at, updated_at
			FROM blogs ORDER BY created_at DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []*Blog
	for rows.Next() {
		var b Blog
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Content, &b.ImageURL,
			&b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		blogs = append(blogs, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
