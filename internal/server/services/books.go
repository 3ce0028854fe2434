package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookworm/internal/common"
	"bookworm/internal/logging"
	"bookworm/internal/server/imagestore"
	"bookworm/internal/server/models"
	"bookworm/internal/server/repositories/repomanager"
)

const defaultPageSize = 5

// CreateBookRequest carries the validated create payload. Image is the
// client-supplied base64 (or data URI) cover image.
type CreateBookRequest struct {
	Title   string
	Caption string
	Rating  int
	Image   string
}

// BookPage is the paginated listing result.
type BookPage struct {
	Books       []*models.Book
	CurrentPage int
	TotalBooks  int
	TotalPages  int
}

// BookService implements the book lifecycle: create with a cover upload,
// paginated listing, per-user listing, and owner-checked deletion.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       imagestore.Store
	logger      logging.Logger
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, store imagestore.Store, l logging.Logger) *BookService {
	return &BookService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      l.With("module", "book_service"),
	}
}

// Create validates the payload, uploads the cover image, and persists the
// book owned by userID. If the insert fails after a successful upload the
// remote object is orphaned; that is logged, not compensated.
func (s *BookService) Create(ctx context.Context, userID string, req *CreateBookRequest) (*models.Book, error) {
	if req.Title == "" || req.Caption == "" || req.Rating == 0 || req.Image == "" {
		return nil, common.ErrorValidation
	}

	data, contentType, err := imagestore.DecodePayload(req.Image)
	if err != nil {
		return nil, common.ErrorValidation
	}

	imageURL, err := s.store.Upload(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("error uploading image: %v", err)
	}

	book := &models.Book{
		Title:   req.Title,
		Caption: req.Caption,
		Rating:  req.Rating,
		Image:   imageURL,
		UserID:  userID,
	}

	repo := s.repomanager.Books(s.db)
	b, err := repo.Create(ctx, book)
	if err != nil {
		s.logger.Error(ctx, "book insert failed after image upload, object orphaned", "url", imageURL)
		return nil, fmt.Errorf("error creating book: %v", err)
	}
	return b, nil
}

// List returns the creation-time-descending page slice together with totals.
// Non-positive page/limit fall back to page 1 and the default page size.
func (s *BookService) List(ctx context.Context, page, limit int) (*BookPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	repo := s.repomanager.Books(s.db)

	items, err := repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %v", err)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting books: %v", err)
	}

	return &BookPage{
		Books:       items,
		CurrentPage: page,
		TotalBooks:  total,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// ListByUser returns all books owned by userID, newest first.
func (s *BookService) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	repo := s.repomanager.Books(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %v", err)
	}
	return items, nil
}

// Delete removes a book after checking that userID owns it. A missing book is
// common.ErrorNotFound; a foreign owner is common.ErrorUnauthorized. Failure
// to delete the hosted cover image is logged and swallowed so it never blocks
// the record deletion.
func (s *BookService) Delete(ctx context.Context, userID, bookID string) error {
	repo := s.repomanager.Books(s.db)

	book, err := repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error loading book: %v", err)
	}

	if book.UserID != userID {
		return common.ErrorUnauthorized
	}

	if s.store.Hosts(book.Image) {
		if err := s.store.Delete(ctx, book.Image); err != nil {
			s.logger.Warn(ctx, "failed to delete cover image", "url", book.Image, "error", err.Error())
		}
	}

	if err := repo.Delete(ctx, bookID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// lost a race with a concurrent delete
			return err
		}
		return fmt.Errorf("error deleting book: %v", err)
	}
	return nil
}
