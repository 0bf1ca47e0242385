package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/pkg/pagination"
	"github.com/librisapp/library-backend/internal/types"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *types.Member) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Member, error)
	List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Member, int64, error)
	Update(ctx context.Context, tx *gorm.DB, member *types.Member) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	IsEmailTaken(ctx context.Context, tx *gorm.DB, email string, excludingID uint) (bool, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

var memberSortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, member *types.Member) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(member).Error
}

func (mr *memberRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var rows []*types.Member
	if err := transaction.WithContext(ctx).
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

func (mr *memberRepo) List(ctx context.Context, tx *gorm.DB, p pagination.Params) ([]*types.Member, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*types.Member
	if err := transaction.WithContext(ctx).
		Order(p.OrderClause(memberSortColumns, "name", true)).
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (mr *memberRepo) Update(ctx context.Context, tx *gorm.DB, member *types.Member) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"name":    member.Name,
			"email":   member.Email,
			"phone":   member.Phone,
			"address": member.Address,
		}).Error
}

func (mr *memberRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	res := transaction.WithContext(ctx).Delete(&types.Member{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (mr *memberRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsEmailTaken is a case-sensitive exact match: the email column is compared
// byte for byte, mirroring the unique index.
func (mr *memberRepo) IsEmailTaken(ctx context.Context, tx *gorm.DB, email string, excludingID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("email = ?", email)
	if excludingID != 0 {
		query = query.Where("id <> ?", excludingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
