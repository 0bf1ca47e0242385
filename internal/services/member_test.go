package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/services"
	"github.com/librisapp/library-backend/internal/testutil"
)

func TestMemberServiceCreateValidatesEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.members.Create(ctx, services.MemberInput{
		Name: "Valid Member", Email: "valid@example.com",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := e.members.Create(ctx, services.MemberInput{Name: "No At", Email: "not-an-email"})
	if !apperr.IsInvalid(err) {
		t.Fatalf("bad email = %v, want invalid", err)
	}

	_, err = e.members.Create(ctx, services.MemberInput{Name: "", Email: "x@example.com"})
	if !apperr.IsInvalid(err) {
		t.Fatalf("empty name = %v, want invalid", err)
	}
}

func TestMemberServiceDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	testutil.SeedMember(t, e.db, "Original", "taken@example.com")

	_, err := e.members.Create(ctx, services.MemberInput{Name: "Impostor", Email: "taken@example.com"})
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "duplicate_email" {
		t.Fatalf("duplicate email = %v (%s), want duplicate_email conflict", err, apperr.CodeFor(err))
	}
}

func TestMemberServiceUpdateDuplicateCheckExcludesSelf(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	member := testutil.SeedMember(t, e.db, "Keeper", "keeper@example.com")
	testutil.SeedMember(t, e.db, "Neighbor", "neighbor@example.com")

	if _, err := e.members.Update(ctx, member.ID, services.MemberInput{
		Name: "Keeper Renamed", Email: "keeper@example.com",
	}); err != nil {
		t.Fatalf("update keeping own email: %v", err)
	}

	_, err := e.members.Update(ctx, member.ID, services.MemberInput{
		Name: "Keeper", Email: "neighbor@example.com",
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("update onto taken email = %v, want conflict", err)
	}
}

func TestMemberServiceDeleteGuard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	author := testutil.SeedAuthor(t, e.db, "Helen DeWitt", "Berlin")
	book := testutil.SeedBook(t, e.db, author.ID, "The Last Samurai")
	member := testutil.SeedMember(t, e.db, "Busy Borrower", "busy@example.com")

	if _, err := e.borrows.BeginLoan(ctx, services.BeginLoanInput{
		BookID: book.ID, MemberID: member.ID, BorrowDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("BeginLoan: %v", err)
	}

	err := e.members.Delete(ctx, member.ID)
	if !apperr.IsConflict(err) || apperr.CodeFor(err) != "member_has_active_loans" {
		t.Fatalf("delete with open loan = %v (%s), want member_has_active_loans conflict", err, apperr.CodeFor(err))
	}

	if _, err := e.borrows.CloseLoan(ctx, book.ID, time.Now().UTC()); err != nil {
		t.Fatalf("CloseLoan: %v", err)
	}
	// Closed borrow history must not block deletion.
	if err := e.members.Delete(ctx, member.ID); err != nil {
		t.Fatalf("delete after return: %v", err)
	}
}
