package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/feature/listing"
)

type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

// Save 插入或整行更新；外键不成立时返回 ErrCustomerNotFound
func (r *ListingRepo) Save(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	m := listing.FromDomain(l)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.Listing{}, domain.ErrCustomerNotFound
		}
		return domain.Listing{}, fmt.Errorf("save listing %s: %w", l.ID, err)
	}
	return m.ToDomain(), nil
}

func (r *ListingRepo) FindByID(ctx context.Context, id string) (domain.Listing, bool, error) {
	var m listing.ListingModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Listing{}, false, nil
	}
	if err != nil {
		return domain.Listing{}, false, fmt.Errorf("find listing %s: %w", id, err)
	}
	return m.ToDomain(), true, nil
}

func (r *ListingRepo) Delete(ctx context.Context, id string) (domain.Listing, bool, error) {
	existing, ok, err := r.FindByID(ctx, id)
	if err != nil || !ok {
		return domain.Listing{}, ok, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&listing.ListingModel{})
	if res.Error != nil {
		return domain.Listing{}, false, fmt.Errorf("delete listing %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Listing{}, false, nil
	}
	return existing, true, nil
}

// SearchByTitle 标题子串匹配（不区分大小写，% 与 _ 按字面量处理）
func (r *ListingRepo) SearchByTitle(ctx context.Context, substring string) ([]domain.Listing, error) {
	like := "%" + escapeLike(strings.ToLower(substring)) + "%"
	var ms []listing.ListingModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", like).
		Order("created_at asc").Order("id asc").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("search listings by title: %w", err)
	}
	return toDomainListings(ms), nil
}

func (r *ListingRepo) List(ctx context.Context, offset, limit int) ([]domain.Listing, int64, error) {
	tx := r.db.WithContext(ctx).Model(&listing.ListingModel{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}
	var ms []listing.ListingModel
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Order("id desc").Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}
	return toDomainListings(ms), total, nil
}

func toDomainListings(ms []listing.ListingModel) []domain.Listing {
	out := make([]domain.Listing, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out
}

// postgres / mysql 的 LIKE 默认转义符都是反斜杠
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
