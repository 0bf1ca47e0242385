package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/types"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, book *types.Book) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Book, error)
	List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Book, int64, error)
	Update(ctx context.Context, tx *gorm.DB, book *types.Book) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uint) (int64, error)
	IsTitleAuthorTaken(ctx context.Context, tx *gorm.DB, title string, authorID, excludingID uint) (bool, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{db: db, log: baseLog.With("repo", "BookRepo")}
}

var bookSortColumns = map[string]string{
	"id":            "id",
	"title":         "title",
	"publisheddate": "published_date",
	"author":        "author_id",
}

func (br *bookRepo) Create(ctx context.Context, tx *gorm.DB, book *types.Book) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Create(book).Error
}

func (br *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var rows []*types.Book
	if err := transaction.WithContext(ctx).
		Preload("Author").
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

func (br *bookRepo) List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Book, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*types.Book
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Order(p.OrderClause(bookSortColumns, "title", true)).
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (br *bookRepo) Update(ctx context.Context, tx *gorm.DB, book *types.Book) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	// IsAvailable is deliberately absent: only the borrow service flips it.
	return transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":          book.Title,
			"published_date": book.PublishedDate,
			"author_id":      book.AuthorID,
		}).Error
}

func (br *bookRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).Delete(&types.Book{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (br *bookRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *bookRepo) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *bookRepo) IsTitleAuthorTaken(ctx context.Context, tx *gorm.DB, title string, authorID, excludingID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("title = ? AND author_id = ?", title, authorID)
	if excludingID != 0 {
		query = query.Where("id <> ?", excludingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
