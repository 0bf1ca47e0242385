package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
	"github.com/librisapp/library-backend/internal/testutil"
)

func TestBookServiceCreateStartsAvailable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Naomi Novik", "New York")
	book, err := e.books.Create(ctx, services.BookInput{
		Title:         "Uprooted",
		PublishedDate: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC),
		AuthorID:      author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !book.IsAvailable {
		t.Fatal("new book did not enter circulation available")
	}
}

func TestBookServiceCreateUnknownAuthor(t *testing.T) {
	e := newEnv(t)
	_, err := e.books.Create(context.Background(), services.BookInput{
		Title: "Orphaned", AuthorID: 9999,
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("create with unknown author = %v, want not found", err)
	}
}

func TestBookServiceDuplicateTitleAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Madeline Miller", "Philadelphia")
	other := testutil.SeedAuthor(t, e.db, "Pat Barker", "Durham")

	in := services.BookInput{Title: "Circe", AuthorID: author.ID}
	if _, err := e.books.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := e.books.Create(ctx, in)
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "duplicate_book" {
		t.Fatalf("duplicate create = %v (%s), want duplicate_book conflict", err, apperr.CodeFor(err))
	}

	// Same title by a different author is allowed.
	in.AuthorID = other.ID
	if _, err := e.books.Create(ctx, in); err != nil {
		t.Fatalf("same title, other author: %v", err)
	}
}

func TestBookServiceUpdateReassignsAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Wrong Author", "Nowhere")
	right := testutil.SeedAuthor(t, e.db, "Right Author", "Somewhere")
	book := testutil.SeedBook(t, e.db, author.ID, "Misfiled")

	updated, err := e.books.Update(ctx, book.ID, services.BookInput{
		Title: "Misfiled", PublishedDate: book.PublishedDate, AuthorID: right.ID,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AuthorID != right.ID {
		t.Fatalf("author id = %d, want %d", updated.AuthorID, right.ID)
	}

	_, err = e.books.Update(ctx, book.ID, services.BookInput{
		Title: "Misfiled", AuthorID: 9999,
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("update to unknown author = %v, want not found", err)
	}
}

func TestBookServiceDeleteGuard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Ann Patchett", "Nashville")
	book := testutil.SeedBook(t, e.db, author.ID, "Bel Canto")
	member := testutil.SeedMember(t, e.db, "Opera Fan", "opera@example.com")

	if _, err := e.borrows.BeginLoan(ctx, services.BeginLoanInput{
		BookID: book.ID, MemberID: member.ID, BorrowDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("BeginLoan: %v", err)
	}

	err := e.books.Delete(ctx, book.ID)
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "book_on_loan" {
		t.Fatalf("delete on loan = %v (%s), want book_on_loan conflict", err, apperr.CodeFor(err))
	}

	if _, err := e.borrows.CloseLoan(ctx, book.ID, time.Now().UTC()); err != nil {
		t.Fatalf("CloseLoan: %v", err)
	}
	// Closed history alone does not block deletion.
	if err := e.books.Delete(ctx, book.ID); err != nil {
		t.Fatalf("delete after return: %v", err)
	}
}
