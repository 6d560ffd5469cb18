package repo

import (
	"context"
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/feature/listing"
	"go-gin-gorm-marketplace/internal/feature/profile"
)

// Store 基于 *gorm.DB 的仓储聚合；Transaction 内返回绑定 tx 的新 Store
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Profiles() domain.ProfileRepository { return NewProfileRepo(s.db) }
func (s *Store) Listings() domain.ListingRepository { return NewListingRepo(s.db) }

func (s *Store) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Models 需要迁移的表（顺序：被引用方在前）
func Models() []any {
	return []any{&profile.ProfileModel{}, &listing.ListingModel{}}
}

// AutoMigrate 建表 + 外键
func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

const (
	pgForeignKeyViolation = "23503"
	myRowIsReferenced     = 1451 // 删除被引用的父行
	myNoReferencedRow     = 1452 // 插入/更新时父行不存在
)

// 不依赖错误字符串，直接按驱动错误码判断
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myRowIsReferenced || myErr.Number == myNoReferencedRow
	}
	return false
}
