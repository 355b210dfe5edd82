package option

import (
	"strings"

	"gorm.io/gorm"
)

// QueryOption customizes a gorm query built by the generic repository.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type optionFunc func(db *gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

func WithOffset(offset int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return db
		}
		return db.Offset(offset)
	})
}

func WithSortBy(sortBy, orderBy string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		column := strings.TrimSpace(sortBy)
		if column == "" {
			return db
		}
		direction := "ASC"
		if strings.EqualFold(strings.TrimSpace(orderBy), "desc") {
			direction = "DESC"
		}
		return db.Order(column + " " + direction)
	})
}

func WithPreload(relation string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(relation) == "" {
			return db
		}
		return db.Preload(relation)
	})
}
