package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
	"github.com/librisapp/library-backend/internal/testutil"
)

func TestAuthorServiceCreateTrimsAndValidates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author, err := e.authors.Create(ctx, services.AuthorInput{
		Name: "  Robin Hobb ", Country: "USA", City: "Tacoma",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if author.Name != "Robin Hobb" {
		t.Fatalf("name = %q, want trimmed", author.Name)
	}

	_, err = e.authors.Create(ctx, services.AuthorInput{Name: "", Country: "USA", City: "Tacoma"})
	if !apperr.IsInvalid(err) {
		t.Fatalf("empty name = %v, want invalid", err)
	}

	_, err = e.authors.Create(ctx, services.AuthorInput{
		Name: strings.Repeat("x", 51), Country: "USA", City: "Tacoma",
	})
	if !apperr.IsInvalid(err) {
		t.Fatalf("oversized name = %v, want invalid", err)
	}
}

func TestAuthorServiceDuplicateNameCity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	in := services.AuthorInput{Name: "Patricia McKillip", Country: "USA", City: "Salem"}
	if _, err := e.authors.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := e.authors.Create(ctx, in)
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "duplicate_author" {
		t.Fatalf("duplicate create = %v (%s), want duplicate_author conflict", err, apperr.CodeFor(err))
	}

	// Same name in another city is a different person.
	other := in
	other.City = "Portland"
	if _, err := e.authors.Create(ctx, other); err != nil {
		t.Fatalf("same name, other city: %v", err)
	}
}

func TestAuthorServiceUpdateDuplicateCheckExcludesSelf(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Guy Gavriel Kay", "Toronto")
	testutil.SeedAuthor(t, e.db, "Steven Erikson", "Victoria")

	// Re-saving unchanged data must not collide with itself.
	if _, err := e.authors.Update(ctx, author.ID, services.AuthorInput{
		Name: "Guy Gavriel Kay", Country: "Testland", City: "Toronto",
	}); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	// Renaming onto another author's name+city must collide.
	_, err := e.authors.Update(ctx, author.ID, services.AuthorInput{
		Name: "Steven Erikson", Country: "Testland", City: "Victoria",
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("rename onto existing pair = %v, want conflict", err)
	}
}

func TestAuthorServiceDeleteGuard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Lois Bujold", "Columbus")
	book := testutil.SeedBook(t, e.db, author.ID, "The Curse of Chalion")

	err := e.authors.Delete(ctx, author.ID)
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "author_has_books" {
		t.Fatalf("delete with books = %v (%s), want author_has_books conflict", err, apperr.CodeFor(err))
	}

	if err := e.books.Delete(ctx, book.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}
	if err := e.authors.Delete(ctx, author.ID); err != nil {
		t.Fatalf("delete author after books removed: %v", err)
	}

	if err := e.authors.Delete(ctx, author.ID); !apperr.IsNotFound(err) {
		t.Fatalf("delete again = %v, want not found", err)
	}
}

func TestAuthorServiceGetMissing(t *testing.T) {
	e := newEnv(t)
	if _, err := e.authors.Get(context.Background(), 404); !apperr.IsNotFound(err) {
		t.Fatalf("Get(missing) = %v, want not found", err)
	}
}
