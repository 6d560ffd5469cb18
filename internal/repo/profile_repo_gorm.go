package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/feature/profile"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Save(ctx context.Context, p domain.CustomerProfile) (domain.CustomerProfile, error) {
	m := profile.FromDomain(p)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return domain.CustomerProfile{}, fmt.Errorf("save customer profile %s: %w", p.ID, err)
	}
	return m.ToDomain(), nil
}

func (r *ProfileRepo) FindByID(ctx context.Context, id string) (domain.CustomerProfile, bool, error) {
	var m profile.ProfileModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CustomerProfile{}, false, nil
	}
	if err != nil {
		return domain.CustomerProfile{}, false, fmt.Errorf("find customer profile %s: %w", id, err)
	}
	return m.ToDomain(), true, nil
}

// Delete 先读后删，返回被删除的档案；仍有 listing 引用时返回 ErrProfileHasListings
func (r *ProfileRepo) Delete(ctx context.Context, id string) (domain.CustomerProfile, bool, error) {
	existing, ok, err := r.FindByID(ctx, id)
	if err != nil || !ok {
		return domain.CustomerProfile{}, ok, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&profile.ProfileModel{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return domain.CustomerProfile{}, false, domain.ErrProfileHasListings
		}
		return domain.CustomerProfile{}, false, fmt.Errorf("delete customer profile %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// 并发删除：读到后已被他人删掉
		return domain.CustomerProfile{}, false, nil
	}
	return existing, true, nil
}

func (r *ProfileRepo) List(ctx context.Context, offset, limit int) ([]domain.CustomerProfile, int64, error) {
	tx := r.db.WithContext(ctx).Model(&profile.ProfileModel{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count customer profiles: %w", err)
	}
	var ms []profile.ProfileModel
	if err := tx.Offset(offset).Limit(limit).Order("created_at desc").Order("id desc").Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("list customer profiles: %w", err)
	}
	out := make([]domain.CustomerProfile, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToDomain())
	}
	return out, total, nil
}
