package books

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"bookworm/internal/common"
	"bookworm/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("b-1", time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+books\s*\(title,\s*caption,\s*rating,\s*image,\s*user_id\)`).
		WithArgs("Dune", "classic", 5, "http://store/covers/x.jpg", "u-1").
		WillReturnRows(rows)

	b := &models.Book{Title: "Dune", Caption: "classic", Rating: 5, Image: "http://store/covers/x.jpg", UserID: "u-1"}
	got, err := repo.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "b-1" || got.UserID != "u-1" {
		t.Fatalf("unexpected book: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*title,\s*caption`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_ExpandsOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "title", "caption", "rating", "image", "user_id", "created_at",
		"username", "profile_image",
	}).
		AddRow("b-2", "Solaris", "later", 4, "http://store/covers/b.jpg", "u-1", now, "alice", "https://avatars/alice").
		AddRow("b-1", "Dune", "earlier", 5, "http://store/covers/a.jpg", "u-2", now.Add(-time.Hour), "bob", "https://avatars/bob")

	mock.ExpectQuery(`(?s)SELECT\s+b\.id.*JOIN\s+users\s+u.*ORDER\s+BY\s+b\.created_at\s+DESC.*OFFSET\s+\$1\s+LIMIT\s+\$2`).
		WithArgs(0, 5).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 books, got %d", len(got))
	}
	if got[0].Owner == nil || got[0].Owner.Username != "alice" {
		t.Fatalf("owner not expanded: %+v", got[0])
	}
	if got[1].Owner == nil || got[1].Owner.ProfileImage != "https://avatars/bob" {
		t.Fatalf("owner not expanded: %+v", got[1])
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+books`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12, got %d", n)
	}
}

func TestListByUser_OnlyOwnRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "caption", "rating", "image", "user_id", "created_at"}).
		AddRow("b-1", "Dune", "classic", 5, "http://store/covers/a.jpg", "u-1", time.Now())

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*title.*WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+books\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "b-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+books`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "gone")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
