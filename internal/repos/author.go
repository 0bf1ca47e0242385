package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/types"
)

type AuthorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, author *types.Author) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Author, error)
	List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Author, int64, error)
	Update(ctx context.Context, tx *gorm.DB, author *types.Author) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	IsNameCityTaken(ctx context.Context, tx *gorm.DB, name, city string, excludingID uint) (bool, error)
}

type authorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	return &authorRepo{db: db, log: baseLog.With("repo", "AuthorRepo")}
}

var authorSortColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"city":    "city",
	"country": "country",
}

func (ar *authorRepo) Create(ctx context.Context, tx *gorm.DB, author *types.Author) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(author).Error
}

func (ar *authorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Author, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []*types.Author
	if err := transaction.WithContext(ctx).
		Preload("Books").
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

func (ar *authorRepo) List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Author, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Author{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*types.Author
	if err := transaction.WithContext(ctx).
		Preload("Books").
		Order(p.OrderClause(authorSortColumns, "name", true)).
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (ar *authorRepo) Update(ctx context.Context, tx *gorm.DB, author *types.Author) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"name":    author.Name,
			"country": author.Country,
			"city":    author.City,
		}).Error
}

func (ar *authorRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	res := transaction.WithContext(ctx).Delete(&types.Author{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ar *authorRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Author{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *authorRepo) IsNameCityTaken(ctx context.Context, tx *gorm.DB, name, city string, excludingID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Author{}).
		Where("name = ? AND city = ?", name, city)
	if excludingID != 0 {
		query = query.Where("id <> ?", excludingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
