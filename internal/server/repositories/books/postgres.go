// Package books provides the PostgreSQL-backed repository for book records.
package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookworm/internal/common"
	"bookworm/internal/dbx"
	"bookworm/internal/server/models"
)

// PostgresRepository implements book storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {

	query :=
		`INSERT INTO books (title, caption, rating, image, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Caption, book.Rating, book.Image, book.UserID).Scan(&book.ID, &book.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query :=
		`SELECT id, title, caption, rating, image, user_id, created_at FROM books
		 WHERE id = $1
		 `

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Caption, &book.Rating, &book.Image, &book.UserID, &book.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

// List returns a creation-time-descending page of books with each owner
// expanded to username and profile image.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, error) {
	query :=
		`SELECT b.id, b.title, b.caption, b.rating, b.image, b.user_id, b.created_at,
		        u.username, u.profile_image
		 FROM books b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at DESC
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select books: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		var item models.Book
		var owner models.Owner
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Caption, &item.Rating, &item.Image, &item.UserID, &item.CreatedAt,
			&owner.Username, &owner.ProfileImage,
		); err != nil {
			return nil, err
		}
		item.Owner = &owner
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the total number of books, ignoring pagination.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	query :=
		`SELECT id, title, caption, rating, image, user_id, created_at FROM books
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select books: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		var item models.Book
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Caption, &item.Rating, &item.Image, &item.UserID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the book row. Deleting an absent id returns common.ErrorNotFound
// so a repeated delete stays a 404, not a server error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
