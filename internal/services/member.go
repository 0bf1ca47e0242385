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

type MemberInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type MemberService interface {
	List(ctx context.Context, p pagination.Params) ([]*types.Member, int64, error)
	Get(ctx context.Context, id uint) (*types.Member, error)
	Create(ctx context.Context, in MemberInput) (*types.Member, error)
	Update(ctx context.Context, id uint, in MemberInput) (*types.Member, error)
	Delete(ctx context.Context, id uint) error
}

type memberService struct {
	db         *gorm.DB
	log        *logger.Logger
	memberRepo repos.MemberRepo
	guard      *DeletionGuard
}

func NewMemberService(gdb *gorm.DB, baseLog *logger.Logger, memberRepo repos.MemberRepo, guard *DeletionGuard) MemberService {
	return &memberService{
		db:         gdb,
		log:        baseLog.With("service", "MemberService"),
		memberRepo: memberRepo,
		guard:      guard,
	}
}

func (s *memberService) List(ctx context.Context, p pagination.Params) ([]*types.Member, int64, error) {
	return s.memberRepo.List(ctx, nil, p.Normalize())
}

func (s *memberService) Get(ctx context.Context, id uint) (*types.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.NotFound("member_not_found", "member %d not found", id)
	}
	return member, nil
}

func (s *memberService) Create(ctx context.Context, in MemberInput) (*types.Member, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	member := &types.Member{Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.memberRepo.IsEmailTaken(ctx, tx, in.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_email", "email already exists")
		}
		if err := s.memberRepo.Create(ctx, tx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_email", "email already exists")
			}
			return err
		}
		return nil
	}); err != nil {
		s.log.Warn("Create member failed", "error", err)
		return nil, err
	}
	return member, nil
}

func (s *memberService) Update(ctx context.Context, id uint, in MemberInput) (*types.Member, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var out *types.Member
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		existing, err := s.memberRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("member_not_found", "member %d not found", id)
		}

		taken, err := s.memberRepo.IsEmailTaken(ctx, tx, in.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("duplicate_email", "email already exists")
		}

		existing.Name = in.Name
		existing.Email = in.Email
		existing.Phone = in.Phone
		existing.Address = in.Address
		if err := s.memberRepo.Update(ctx, tx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("duplicate_email", "email already exists")
			}
			return err
		}
		out = existing
		return nil
	}); err != nil {
		s.log.Warn("Update member failed", "error", err, "member_id", id)
		return nil, err
	}
	return out, nil
}

func (s *memberService) Delete(ctx context.Context, id uint) error {
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.memberRepo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("member_not_found", "member %d not found", id)
		}

		ok, reason, err := s.guard.CanDeleteMember(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("member_has_active_loans", "cannot delete member: %s", reason)
		}

		if _, err := s.memberRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Delete member failed", "error", err, "member_id", id)
	}
	return err
}

func (in MemberInput) trimmed() MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

func (in MemberInput) validate() error {
	switch {
	case in.Name == "" || len(in.Name) > 50:
		return apperr.Invalid("invalid_member_name", "name is required and must be at most 50 characters")
	case in.Email == "" || len(in.Email) > 100 || !strings.Contains(in.Email, "@"):
		return apperr.Invalid("invalid_member_email", "a valid email is required")
	}
	return nil
}
