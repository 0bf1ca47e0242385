package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/db"
	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/repos"
	"github.com/librisapp/library-backend/internal/types"
)

type BookInput struct {
	Title         string
	PublishedDate time.Time
	AuthorID      uint
}

type BookService interface {
	List(ctx context.Context, p pagination.Params) ([]*types.Book, int64, error)
	Get(ctx context.Context, id uint) (*types.Book, error)
	Create(ctx context.Context, in BookInput) (*types.Book, error)
	Update(ctx context.Context, id uint, in BookInput) (*types.Book, error)
	Delete(ctx context.Context, id uint) error
}

type bookService struct {
	db         *gorm.DB
	log        *logger.Logger
	bookRepo   repos.BookRepo
	authorRepo repos.AuthorRepo
	guard      *DeletionGuard
}

func NewBookService(gdb *gorm.DB, baseLog *logger.Logger, bookRepo repos.BookRepo, authorRepo repos.AuthorRepo, guard *DeletionGuard) BookService {
	return &bookService{
		db:         gdb,
		log:        baseLog.With("service", "BookService"),
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		guard:      guard,
	}
}

func (s *bookService) List(ctx context.Context, p pagination.Params) ([]*types.Book, int64, error) {
	return s.bookRepo.List(ctx, nil, p.Normalize())
}

func (s *bookService) Get(ctx context.Context, id uint) (*types.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("book_not_found", "book %d not found", id)
	}
	return book, nil
}

func (s *bookService) Create(ctx context.Context, in BookInput) (*types.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := in.validate(); err != nil {
		return nil, err
	}

	// New books always enter circulation available; availability is owned by
	// the lending flow from then on.
	book := &types.Book{
		Title:         in.Title,
		PublishedDate: in.PublishedDate,
		IsAvailable:   true,
		AuthorID:      in.AuthorID,
	}
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		authorExists, err := s.authorRepo.Exists(ctx, tx, in.AuthorID)
		if err != nil {
			return err
		}
		if !authorExists {
			return apperr.NotFound("author_not_found", "author %d not found", in.AuthorID)
		}

		taken, err := s.bookRepo.IsTitleAuthorTaken(ctx, tx, in.Title, in.AuthorID, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_book", "a book with the same title and author already exists")
		}

		if err := s.bookRepo.Create(ctx, tx, book); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_book", "a book with the same title and author already exists")
			}
			return err
		}
		return nil
	}); err != nil {
		s.log.Warn("Create book failed", "error", err, "title", in.Title)
		return nil, err
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, id uint, in BookInput) (*types.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := in.validate(); err != nil {
		return nil, err
	}

	var out *types.Book
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		existing, err := s.bookRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("book_not_found", "book %d not found", id)
		}

		if existing.AuthorID != in.AuthorID {
			authorExists, err := s.authorRepo.Exists(ctx, tx, in.AuthorID)
			if err != nil {
				return err
			}
			if !authorExists {
				return apperr.NotFound("author_not_found", "author %d not found", in.AuthorID)
			}
		}

		taken, err := s.bookRepo.IsTitleAuthorTaken(ctx, tx, in.Title, in.AuthorID, id)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_book", "another book with the same title and author already exists")
		}

		existing.Title = in.Title
		existing.PublishedDate = in.PublishedDate
		existing.AuthorID = in.AuthorID
		if err := s.bookRepo.Update(ctx, tx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_book", "another book with the same title and author already exists")
			}
			return err
		}
		out = existing
		return nil
	}); err != nil {
		s.log.Warn("Update book failed", "error", err, "book_id", id)
		return nil, err
	}
	return out, nil
}

func (s *bookService) Delete(ctx context.Context, id uint) error {
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.bookRepo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("book_not_found", "book %d not found", id)
		}

		ok, reason, err := s.guard.CanDeleteBook(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("book_on_loan", "cannot delete book: %s", reason)
		}

		if _, err := s.bookRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Delete book failed", "error", err, "book_id", id)
	}
	return err
}

func (in BookInput) validate() error {
	switch {
	case in.Title == "" || len(in.Title) > 50:
		return apperr.Invalid("invalid_book_title", "title is required and must be at most 50 characters")
	case in.AuthorID == 0:
		return apperr.Invalid("invalid_book_author", "author_id is required")
	}
	return nil
}
