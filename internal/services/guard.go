package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/repos"
)

// DeletionGuard holds the cross-entity predicates consulted before any
// delete. Each predicate must be re-evaluated inside the same transaction as
// the delete itself, otherwise a loan beginning between check and delete
// could orphan the constraint.
type DeletionGuard struct {
	log        *logger.Logger
	bookRepo   repos.BookRepo
	borrowRepo repos.BorrowRepo
}

func NewDeletionGuard(baseLog *logger.Logger, bookRepo repos.BookRepo, borrowRepo repos.BorrowRepo) *DeletionGuard {
	return &DeletionGuard{
		log:        baseLog.With("service", "DeletionGuard"),
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
	}
}

// CanDeleteAuthor is false while any book still references the author.
func (g *DeletionGuard) CanDeleteAuthor(ctx context.Context, tx *gorm.DB, authorID uint) (bool, string, error) {
	count, err := g.bookRepo.CountByAuthor(ctx, tx, authorID)
	if err != nil {
		return false, "", err
	}
	if count > 0 {
		return false, "author still has books; delete the books first", nil
	}
	return true, "", nil
}

// CanDeleteBook is false while the book is out on loan.
func (g *DeletionGuard) CanDeleteBook(ctx context.Context, tx *gorm.DB, bookID uint) (bool, string, error) {
	open, err := g.borrowRepo.HasOpenByBook(ctx, tx, bookID)
	if err != nil {
		return false, "", err
	}
	if open {
		return false, "book is currently on loan", nil
	}
	return true, "", nil
}

// CanDeleteMember is false while the member has an open loan.
func (g *DeletionGuard) CanDeleteMember(ctx context.Context, tx *gorm.DB, memberID uint) (bool, string, error) {
	open, err := g.borrowRepo.HasOpenByMember(ctx, tx, memberID)
	if err != nil {
		return false, "", err
	}
	if open {
		return false, "member has active loans", nil
	}
	return true, "", nil
}
