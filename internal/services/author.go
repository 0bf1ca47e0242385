package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/db"
	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/repos"
	"github.com/librisapp/library-backend/internal/types"
)

type AuthorInput struct {
	Name    string
	Country string
	City    string
}

type AuthorService interface {
	List(ctx context.Context, p pagination.Params) ([]*types.Author, int64, error)
	Get(ctx context.Context, id uint) (*types.Author, error)
	Create(ctx context.Context, in AuthorInput) (*types.Author, error)
	Update(ctx context.Context, id uint, in AuthorInput) (*types.Author, error)
	Delete(ctx context.Context, id uint) error
}

type authorService struct {
	db         *gorm.DB
	log        *logger.Logger
	authorRepo repos.AuthorRepo
	guard      *DeletionGuard
}

func NewAuthorService(gdb *gorm.DB, baseLog *logger.Logger, authorRepo repos.AuthorRepo, guard *DeletionGuard) AuthorService {
	return &authorService{
		db:         gdb,
		log:        baseLog.With("service", "AuthorService"),
		authorRepo: authorRepo,
		guard:      guard,
	}
}

func (s *authorService) List(ctx context.Context, p pagination.Params) ([]*types.Author, int64, error) {
	return s.authorRepo.List(ctx, nil, p.Normalize())
}

func (s *authorService) Get(ctx context.Context, id uint) (*types.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("author_not_found", "author %d not found", id)
	}
	return author, nil
}

func (s *authorService) Create(ctx context.Context, in AuthorInput) (*types.Author, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	author := &types.Author{Name: in.Name, Country: in.Country, City: in.City}
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.authorRepo.IsNameCityTaken(ctx, tx, in.Name, in.City, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_author", "an author with the same name and city already exists")
		}
		if err := s.authorRepo.Create(ctx, tx, author); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_author", "an author with the same name and city already exists")
			}
			return err
		}
		return nil
	}); err != nil {
		s.log.Warn("Create author failed", "error", err, "name", in.Name)
		return nil, err
	}
	return author, nil
}

func (s *authorService) Update(ctx context.Context, id uint, in AuthorInput) (*types.Author, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var out *types.Author
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		existing, err := s.authorRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("author_not_found", "author %d not found", id)
		}

		taken, err := s.authorRepo.IsNameCityTaken(ctx, tx, in.Name, in.City, id)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_author", "another author with the same name and city already exists")
		}

		existing.Name = in.Name
		existing.Country = in.Country
		existing.City = in.City
		if err := s.authorRepo.Update(ctx, tx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_author", "another author with the same name and city already exists")
			}
			return err
		}
		out = existing
		return nil
	}); err != nil {
		s.log.Warn("Update author failed", "error", err, "author_id", id)
		return nil, err
	}
	return out, nil
}

func (s *authorService) Delete(ctx context.Context, id uint) error {
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.authorRepo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("author_not_found", "author %d not found", id)
		}

		ok, reason, err := s.guard.CanDeleteAuthor(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("author_has_books", "cannot delete author: %s", reason)
		}

		if _, err := s.authorRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Delete author failed", "error", err, "author_id", id)
	}
	return err
}

func (in AuthorInput) trimmed() AuthorInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Country = strings.TrimSpace(in.Country)
	in.City = strings.TrimSpace(in.City)
	return in
}

func (in AuthorInput) validate() error {
	switch {
	case in.Name == "" || len(in.Name) > 50:
		return apperr.Invalid("invalid_author_name", "name is required and must be at most 50 characters")
	case in.Country == "" || len(in.Country) > 50:
		return apperr.Invalid("invalid_author_country", "country is required and must be at most 50 characters")
	case in.City == "" || len(in.City) > 50:
		return apperr.Invalid("invalid_author_city", "city is required and must be at most 50 characters")
	}
	return nil
}
