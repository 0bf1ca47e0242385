package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/types"
)

// BorrowRepo is the ledger's storage access. It is also the only writer of
// book.is_available: availability is derived from the open-loan set and no
// other repo may flip it.
type BorrowRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.BorrowRecord) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.BorrowRecord, error)
	GetOpenByBook(ctx context.Context, tx *gorm.DB, bookID uint) (*types.BorrowRecord, error)
	HasOpenByBook(ctx context.Context, tx *gorm.DB, bookID uint) (bool, error)
	HasOpenByMember(ctx context.Context, tx *gorm.DB, memberID uint) (bool, error)
	Close(ctx context.Context, tx *gorm.DB, recordID uint, closedAt time.Time) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, record *types.BorrowRecord) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	ListByMember(ctx context.Context, tx *gorm.DB, memberID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	ListByBook(ctx context.Context, tx *gorm.DB, bookID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	ListActive(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.BorrowRecord, int64, error)
	SetBookAvailability(ctx context.Context, tx *gorm.DB, bookID uint, available bool) error
}

type borrowRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBorrowRepo(db *gorm.DB, baseLog *logger.Logger) BorrowRepo {
	return &borrowRepo{db: db, log: baseLog.With("repo", "BorrowRepo")}
}

var borrowSortColumns = map[string]string{
	"id":         "id",
	"borrowdate": "borrow_date",
	"returndate": "return_date",
}

func (br *borrowRepo) Create(ctx context.Context, tx *gorm.DB, record *types.BorrowRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Create(record).Error
}

func (br *borrowRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.BorrowRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var rows []*types.BorrowRecord
	if err := transaction.WithContext(ctx).
		Preload("Book").
		Preload("Member").
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (br *borrowRepo) GetOpenByBook(ctx context.Context, tx *gorm.DB, bookID uint) (*types.BorrowRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var rows []*types.BorrowRecord
	if err := transaction.WithContext(ctx).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (br *borrowRepo) HasOpenByBook(ctx context.Context, tx *gorm.DB, bookID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BorrowRecord{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *borrowRepo) HasOpenByMember(ctx context.Context, tx *gorm.DB, memberID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BorrowRecord{}).
		Where("member_id = ? AND return_date IS NULL", memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close stamps the return date on an open record. The guarded WHERE is the
// optimistic check: if the record was closed concurrently, RowsAffected is 0
// and the caller must fail with a conflict rather than stamp twice.
func (br *borrowRepo) Close(ctx context.Context, tx *gorm.DB, recordID uint, closedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.BorrowRecord{}).
		Where("id = ? AND return_date IS NULL", recordID).
		Update("return_date", closedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (br *borrowRepo) Update(ctx context.Context, tx *gorm.DB, record *types.BorrowRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.BorrowRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"book_id":     record.BookID,
			"member_id":   record.MemberID,
			"borrow_date": record.BorrowDate,
			"return_date": record.ReturnDate,
		}).Error
}

func (br *borrowRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).Delete(&types.BorrowRecord{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (br *borrowRepo) List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return br.list(ctx, tx, p, nil)
}

func (br *borrowRepo) ListByMember(ctx context.Context, tx *gorm.DB, memberID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return br.list(ctx, tx, p, map[string]any{"member_id": memberID})
}

func (br *borrowRepo) ListByBook(ctx context.Context, tx *gorm.DB, bookID uint, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return br.list(ctx, tx, p, map[string]any{"book_id": bookID})
}

func (br *borrowRepo) ListActive(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.BorrowRecord, int64, error) {
	return br.list(ctx, tx, p, map[string]any{"return_date": nil})
}

func (br *borrowRepo) list(ctx context.Context, tx *gorm.DB, p pagination.Params, filter map[string]any) ([]*types.BorrowRecord, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	countQuery := transaction.WithContext(ctx).Model(&types.BorrowRecord{})
	if filter != nil {
		countQuery = countQuery.Where(filter)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	findQuery := transaction.WithContext(ctx).
		Preload("Book").
		Preload("Member")
	if filter != nil {
		findQuery = findQuery.Where(filter)
	}

	var rows []*types.BorrowRecord
	if err := findQuery.
		Order(p.OrderClause(borrowSortColumns, "borrow_date", false)).
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (br *borrowRepo) SetBookAvailability(ctx context.Context, tx *gorm.DB, bookID uint, available bool) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("id = ?", bookID).
		Update("is_available", available).Error
}
