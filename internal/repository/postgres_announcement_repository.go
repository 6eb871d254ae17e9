package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Insper-Code/site-code/internal/domain"
)

// PostgresAnnouncementRepository implements AnnouncementRepository using PostgreSQL
type PostgresAnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAnnouncementRepository creates a new PostgresAnnouncementRepository
func NewPostgresAnnouncementRepository(pool *pgxpool.Pool) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{pool: pool}
}

// Create creates a new announcement
func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (id, title, body, category, author, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.Category,
		a.Author,
		a.PublishedAt,
	)
	return err
}

// GetByID retrieves an announcement by ID
func (r *PostgresAnnouncementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	query := `
		SELECT id, title, body, category, author, published_at
		FROM announcements
		WHERE id = $1
	`
	a := &domain.Announcement{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.Category,
		&a.Author,
		&a.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// GetAll retrieves all announcements, newest first
func (r *PostgresAnnouncementRepository) GetAll(ctx context.Context) ([]*domain.Announcement, error) {
	query := `
		SELECT id, title, body, category, author, published_at
		FROM announcements
		ORDER BY published_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Announcement
	for rows.Next() {
		a := &domain.Announcement{}
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Body,
			&a.Category,
			&a.Author,
			&a.PublishedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update updates an announcement
func (r *PostgresAnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, body = $3, category = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.Category,
	)
	return err
}

// Delete deletes an announcement
func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM announcements WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Count returns the number of announcements
func (r *PostgresAnnouncementRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&count)
	return count, err
}
