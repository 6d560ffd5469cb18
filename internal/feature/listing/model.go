package listing

import (
	"time"

	"gorm.io/datatypes"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/feature/profile"
)

type ListingModel struct {
	ID          string   `gorm:"primaryKey;type:varchar(32)"`
	Title       string   `gorm:"size:255;not null;index"`
	Description string   `gorm:"type:text"`
	Price       *float64 `gorm:"type:double precision"`
	Longitude   float64  `gorm:"not null"`
	Latitude    float64  `gorm:"not null"`
	Category    string   `gorm:"size:32;not null;index"`
	Status      string   `gorm:"size:16;not null"`
	StarCount   int      `gorm:"not null;default:0"`

	Images datatypes.JSONSlice[string] `gorm:"type:json"`

	CustomerID string                `gorm:"type:varchar(32);not null;index"`
	Customer   *profile.ProfileModel `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (ListingModel) TableName() string { return "listings" }

func FromDomain(l domain.Listing) ListingModel {
	images := datatypes.JSONSlice[string]{}
	if len(l.Images) > 0 {
		images = append(images, l.Images...)
	}
	return ListingModel{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Longitude:   l.Longitude,
		Latitude:    l.Latitude,
		Category:    string(l.Category),
		Status:      string(l.Status),
		StarCount:   l.StarCount,
		Images:      images,
		CustomerID:  l.CustomerID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToDomain 库里的枚举值视为可信，不再解析
func (m ListingModel) ToDomain() domain.Listing {
	images := make([]string, 0, len(m.Images))
	images = append(images, m.Images...)
	return domain.Listing{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Longitude:   m.Longitude,
		Latitude:    m.Latitude,
		Category:    domain.Category(m.Category),
		Status:      domain.Status(m.Status),
		StarCount:   m.StarCount,
		Images:      images,
		CustomerID:  m.CustomerID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
