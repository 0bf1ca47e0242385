package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/db"
	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/apperr"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/repos"
	"github.com/librisapp/library-backend/internal/types"
)

type BeginLoanInput struct {
	BookID     uint
	MemberID   uint
	BorrowDate time.Time
}

type EditLoanInput struct {
	BookID     uint
	MemberID   uint
	BorrowDate time.Time
	ReturnDate *time.Time
}

// BorrowService is the lending ledger. It is the only component that creates
// or closes borrow records and the only writer of a book's availability flag;
// every compound operation runs inside one transaction so the flag and the
// open-loan set can never disagree.
type BorrowService interface {
	List(ctx context.Context, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	Get(ctx context.Context, id uint) (*types.BorrowRecord, error)
	ListByMember(ctx context.Context, memberID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	ListByBook(ctx context.Context, bookID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	ListActive(ctx context.Context, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	BeginLoan(ctx context.Context, in BeginLoanInput) (*types.BorrowRecord, error)
	CloseLoan(ctx context.Context, bookID uint, closedAt time.Time) (*types.BorrowRecord, error)
	EditLoan(ctx context.Context, id uint, in EditLoanInput) (*types.BorrowRecord, error)
	DeleteLoan(ctx context.Context, id uint) error
}

type borrowService struct {
	db         *gorm.DB
	log        *logger.Logger
	borrowRepo repos.BorrowRepo
	bookRepo   repos.BookRepo
	memberRepo repos.MemberRepo
}

func NewBorrowService(gdb *gorm.DB, baseLog *logger.Logger, borrowRepo repos.BorrowRepo, bookRepo repos.BookRepo, memberRepo repos.MemberRepo) BorrowService {
	return &borrowService{
		db:         gdb,
		log:        baseLog.With("service", "BorrowService"),
		borrowRepo: borrowRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
	}
}

func (s *borrowService) List(ctx context.Context, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return s.borrowRepo.List(ctx, nil, p.Normalize())
}

func (s *borrowService) Get(ctx context.Context, id uint) (*types.BorrowRecord, error) {
	record, err := s.borrowRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("borrow_not_found", "borrow record %d not found", id)
	}
	return record, nil
}

func (s *borrowService) ListByMember(ctx context.Context, memberID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	exists, err := s.memberRepo.Exists(ctx, nil, memberID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("member_not_found", "member %d not found", memberID)
	}
	return s.borrowRepo.ListByMember(ctx, nil, memberID, p.Normalize())
}

func (s *borrowService) ListByBook(ctx context.Context, bookID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	exists, err := s.bookRepo.Exists(ctx, nil, bookID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("book_not_found", "book %d not found", bookID)
	}
	return s.borrowRepo.ListByBook(ctx, nil, bookID, p.Normalize())
}

func (s *borrowService) ListActive(ctx context.Context, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return s.borrowRepo.ListActive(ctx, nil, p.Normalize())
}

// BeginLoan opens a loan: it inserts the open record and flips the book to
// unavailable in one transaction. The open-loan pre-check gives the friendly
// conflict; the partial unique index on (book_id) WHERE return_date IS NULL
// is what actually guarantees that of two concurrent begins exactly one
// commits.
func (s *borrowService) BeginLoan(ctx context.Context, in BeginLoanInput) (*types.BorrowRecord, error) {
	if in.BookID == 0 || in.MemberID == 0 {
		return nil, apperr.Invalid("invalid_loan", "book_id and member_id are required")
	}
	if in.BorrowDate.IsZero() {
		return nil, apperr.Invalid("invalid_loan", "borrow_date is required")
	}

	record := &types.BorrowRecord{
		BookID:     in.BookID,
		MemberID:   in.MemberID,
		BorrowDate: in.BorrowDate,
	}
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		bookExists, err := s.bookRepo.Exists(ctx, tx, in.BookID)
		if err != nil {
			return err
		}
		if !bookExists {
			return apperr.NotFound("book_not_found", "book %d not found", in.BookID)
		}

		memberExists, err := s.memberRepo.Exists(ctx, tx, in.MemberID)
		if err != nil {
			return err
		}
		if !memberExists {
			return apperr.NotFound("member_not_found", "member %d not found", in.MemberID)
		}

		open, err := s.borrowRepo.HasOpenByBook(ctx, tx, in.BookID)
		if err != nil {
			return err
		}
		if open {
			return apperr.Conflict("book_on_loan", "book is already on loan")
		}

		if err := s.borrowRepo.Create(ctx, tx, record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race against a concurrent begin; the index kept
				// the ledger consistent.
				return apperr.Conflict("book_on_loan", "book is already on loan")
			}
			return err
		}

		return s.borrowRepo.SetBookAvailability(ctx, tx, in.BookID, false)
	}); err != nil {
		s.log.Warn("BeginLoan failed", "error", err, "book_id", in.BookID, "member_id", in.MemberID)
		return nil, err
	}

	s.log.Info("Loan opened", "borrow_id", record.ID, "book_id", in.BookID, "member_id", in.MemberID)
	return record, nil
}

// CloseLoan returns the book: it stamps the open record's return date and
// flips the book back to available in one transaction. A second close of the
// same loan observes the guarded update touching zero rows and fails with a
// conflict instead of stamping twice.
func (s *borrowService) CloseLoan(ctx context.Context, bookID uint, closedAt time.Time) (*types.BorrowRecord, error) {
	if bookID == 0 {
		return nil, apperr.Invalid("invalid_return", "book_id is required")
	}
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	var out *types.BorrowRecord
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		record, err := s.borrowRepo.GetOpenByBook(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NotFound("no_open_loan", "no open loan for book %d", bookID)
		}

		closed, err := s.borrowRepo.Close(ctx, tx, record.ID, closedAt)
		if err != nil {
			return err
		}
		if !closed {
			return apperr.Conflict("already_returned", "book is already returned")
		}

		if err := s.borrowRepo.SetBookAvailability(ctx, tx, bookID, true); err != nil {
			return err
		}

		record.ReturnDate = &closedAt
		out = record
		return nil
	}); err != nil {
		s.log.Warn("CloseLoan failed", "error", err, "book_id", bookID)
		return nil, err
	}

	s.log.Info("Loan closed", "borrow_id", out.ID, "book_id", bookID)
	return out, nil
}

// EditLoan is the administrative correction path. It never touches the
// book's availability, so any edit that would let the record and the flag
// drift apart is rejected: an open loan cannot move to another book or be
// closed here, and a returned loan cannot be reopened.
func (s *borrowService) EditLoan(ctx context.Context, id uint, in EditLoanInput) (*types.BorrowRecord, error) {
	if in.BookID == 0 || in.MemberID == 0 {
		return nil, apperr.Invalid("invalid_loan", "book_id and member_id are required")
	}
	if in.BorrowDate.IsZero() {
		return nil, apperr.Invalid("invalid_loan", "borrow_date is required")
	}

	var out *types.BorrowRecord
	if err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		record, err := s.borrowRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NotFound("borrow_not_found", "borrow record %d not found", id)
		}

		if record.Open() {
			if in.BookID != record.BookID {
				return apperr.Conflict("loan_is_open", "cannot move an open loan to another book")
			}
			if in.ReturnDate != nil {
				return apperr.Conflict("loan_is_open", "use the return operation to close a loan")
			}
		} else if in.ReturnDate == nil {
			return apperr.Conflict("loan_is_closed", "cannot reopen a returned loan")
		}

		if in.BookID != record.BookID {
			bookExists, err := s.bookRepo.Exists(ctx, tx, in.BookID)
			if err != nil {
				return err
			}
			if !bookExists {
				return apperr.NotFound("book_not_found", "book %d not found", in.BookID)
			}
		}
		if in.MemberID != record.MemberID {
			memberExists, err := s.memberRepo.Exists(ctx, tx, in.MemberID)
			if err != nil {
				return err
			}
			if !memberExists {
				return apperr.NotFound("member_not_found", "member %d not found", in.MemberID)
			}
		}

		record.BookID = in.BookID
		record.MemberID = in.MemberID
		record.BorrowDate = in.BorrowDate
		record.ReturnDate = in.ReturnDate
		if err := s.borrowRepo.Update(ctx, tx, record); err != nil {
			return err
		}
		out = record
		return nil
	}); err != nil {
		s.log.Warn("EditLoan failed", "error", err, "borrow_id", id)
		return nil, err
	}
	return out, nil
}

// DeleteLoan removes a ledger entry outright. This exists only for
// administrative corrections of bad bookkeeping. Deleting an open record
// also flips the book back to available, so the correction cannot strand an
// unavailable book with no open loan.
func (s *borrowService) DeleteLoan(ctx context.Context, id uint) error {
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		record, err := s.borrowRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NotFound("borrow_not_found", "borrow record %d not found", id)
		}

		if _, err := s.borrowRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		if record.Open() {
			return s.borrowRepo.SetBookAvailability(ctx, tx, record.BookID, true)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("DeleteLoan failed", "error", err, "borrow_id", id)
	}
	return err
}
