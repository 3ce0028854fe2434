package books

import (
	"context"

	"bookworm/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, error)
	Count(ctx context.Context) (int, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Book, error)
	Delete(ctx context.Context, id string) error
}
