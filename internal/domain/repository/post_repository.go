package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogql/internal/common"
	"blogql/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// FindByID loads a single post; with populateCreator the owning user is
	// joined in (without the password hash).
	FindByID(ctx context.Context, id string, populateCreator bool) (*model.Post, error)
	// List returns one page sorted by creation time descending, plus the
	// total number of posts for client-side page-count computation.
	List(ctx context.Context, limit, offset int) ([]model.Post, int, error)
	// ListByCreator returns the user's owned posts, newest first.
	ListByCreator(ctx context.Context, creatorID string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, title, slug, content, image_url, creator_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.ImageURL, post.CreatorID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string, populateCreator bool) (*model.Post, error) {
	post := &model.Post{}

	if !populateCreator {
		query := `SELECT id, title, slug, content, image_url, creator_id, created_at, updated_at
		          FROM posts WHERE id = $1`
		err := r.db.QueryRowContext(ctx, query, id).Scan(
			&post.ID, &post.Title, &post.Slug, &post.Content, &post.ImageURL,
			&post.CreatorID, &post.CreatedAt, &post.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, common.ErrNotFound
			}
			return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
		}
		return post, nil
	}

	query := `SELECT p.id, p.title, p.slug, p.content, p.image_url, p.creator_id,
	                 p.created_at, p.updated_at,
	                 u.id, u.email, u.name, u.status, u.created_at, u.updated_at
	          FROM posts p JOIN users u ON p.creator_id = u.id
	          WHERE p.id = $1`
	creator := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.ImageURL,
		&post.CreatorID, &post.CreatedAt, &post.UpdatedAt,
		&creator.ID, &creator.Email, &creator.Name, &creator.Status,
		&creator.CreatedAt, &creator.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	post.Creator = creator
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, limit, offset int) ([]model.Post, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
	}

	query := `SELECT p.id, p.title, p.slug, p.content, p.image_url, p.creator_id,
	                 p.created_at, p.updated_at,
	                 u.id, u.email, u.name, u.status, u.created_at, u.updated_at
	          FROM posts p JOIN users u ON p.creator_id = u.id
	          ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		creator := &model.User{}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.ImageURL, &p.CreatorID,
			&p.CreatedAt, &p.UpdatedAt,
			&creator.ID, &creator.Email, &creator.Name, &creator.Status,
			&creator.CreatedAt, &creator.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		p.Creator = creator
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List rows.Err: %w", err)
	}

	return posts, total, nil
}

func (r *pgPostRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Post, error) {
	query := `SELECT id, title, slug, content, image_url, creator_id, created_at, updated_at
	          FROM posts WHERE creator_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListByCreator query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.ImageURL, &p.CreatorID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgPostRepository.ListByCreator scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListByCreator rows.Err: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts
	          SET title = $1, slug = $2, content = $3, image_url = $4, updated_at = now()
	          WHERE id = $5
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Slug, post.Content, post.ImageURL, post.ID,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
