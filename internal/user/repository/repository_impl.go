package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() userdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *userdomain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *userdomain.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*userdomain.User, error) {
	var user userdomain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]userdomain.User, error) {
	var users []userdomain.User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) FindByResetTokenHash(ctx context.Context, db *gorm.DB, hash string) (*userdomain.User, error) {
	var user userdomain.User
	err := db.WithContext(ctx).Where("reset_token_hash = ?", hash).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter userdomain.ListRequest) ([]userdomain.User, int64, error) {
	stmt := db.WithContext(ctx).Model(&userdomain.User{})

	if filter.StoreID != nil {
		stmt = stmt.Where("store_id = ?", *filter.StoreID)
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		stmt = stmt.Where("role = ?", role)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		stmt = stmt.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []userdomain.User
	page := filter.Pagination.Normalize()
	err := stmt.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&userdomain.User{}).Error
}

func (r *repo) CountEmailConflicts(ctx context.Context, db *gorm.DB, role userdomain.Role, storeID *snowflake.ID, email string, excludeID snowflake.ID) (int64, error) {
	stmt := db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("email = ?", email)

	switch {
	case role.StoreScoped():
		if storeID == nil {
			return 0, userdomain.ErrStoreRequired
		}
		stmt = stmt.Where("store_id = ?", *storeID)
	case role == userdomain.RoleSuperadmin:
		stmt = stmt.Where("role = ?", role)
	default:
		// wholesaler and affiliate accounts may reuse an address
		return 0, nil
	}

	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
