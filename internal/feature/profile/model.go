package profile

import (
	"time"

	"go-gin-gorm-marketplace/internal/domain"
)

// ProfileModel 持久化实体；时间戳由 service 写入，关闭 GORM 自动维护
type ProfileModel struct {
	ID       string `gorm:"primaryKey;type:varchar(32)"`
	Name     string `gorm:"size:128;not null"`
	Email    string `gorm:"size:255;not null;index"`
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (ProfileModel) TableName() string { return "customer_profiles" }

func FromDomain(p domain.CustomerProfile) ProfileModel {
	return ProfileModel{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Password:  p.Password,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m ProfileModel) ToDomain() domain.CustomerProfile {
	return domain.CustomerProfile{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}
