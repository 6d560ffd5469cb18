package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

type Category string

const (
	CategoryElectronics   Category = "ELECTRONICS"
	CategoryFurniture     Category = "FURNITURE"
	CategoryClothing      Category = "CLOTHING"
	CategoryBooks         Category = "BOOKS"
	CategorySports        Category = "SPORTS"
	CategoryToys          Category = "TOYS"
	CategoryVehicles      Category = "VEHICLES"
	CategoryHomeAndGarden Category = "HOME_AND_GARDEN"
	CategoryMusic         Category = "MUSIC"
	CategoryOther         Category = "OTHER"
)

// Categories 固定枚举集合（顺序即展示顺序）
var Categories = []Category{
	CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryBooks, CategorySports,
	CategoryToys, CategoryVehicles, CategoryHomeAndGarden, CategoryMusic, CategoryOther,
}

// ParseCategory 精确匹配（区分大小写），未知值不做默认
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ValidationError{
		Field:  "category",
		Value:  s,
		Reason: "must be one of " + joinEnum(Categories),
		Err:    ErrInvalidCategory,
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusSold     Status = "SOLD"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusSold}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", &ValidationError{
		Field:  "status",
		Value:  s,
		Reason: "must be one of " + joinEnum(Statuses),
		Err:    ErrInvalidStatus,
	}
}

func joinEnum[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Listing 商品（读模型）
type Listing struct {
	ID          string
	Title       string
	Description string
	Price       *float64
	Longitude   float64
	Latitude    float64
	Category    Category
	CustomerID  string
	Status      Status
	Images      []string
	StarCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate 字段级校验（枚举已由 Parse* 保证）
func (l Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return invalidField("title", l.Title, "must not be blank")
	}
	if l.Price != nil {
		switch p := *l.Price; {
		case math.IsNaN(p) || math.IsInf(p, 0):
			return invalidField("price", fmt.Sprint(p), "must be a finite number")
		case p < 0:
			return invalidField("price", fmt.Sprint(p), "must not be negative")
		}
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return invalidField("latitude", fmt.Sprint(l.Latitude), "must be within [-90, 90]")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return invalidField("longitude", fmt.Sprint(l.Longitude), "must be within [-180, 180]")
	}
	if l.StarCount < 0 {
		return invalidField("starCount", fmt.Sprint(l.StarCount), "must not be negative")
	}
	return nil
}

// NewListing 创建入参；枚举保持字符串，由 service 在持久化前解析
type NewListing struct {
	Title       string
	Description string
	Price       *float64
	Longitude   float64
	Latitude    float64
	Category    string
	CustomerID  string
	Status      string
	Images      []string
}

// ListingPatch 部分更新：nil 表示不修改
type ListingPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Longitude   *float64
	Latitude    *float64
	Category    *string
	CustomerID  *string
	Status      *string
	Images      *[]string
}

// Apply 把 patch 合并到 l 上；枚举非法时 l 不变
func (p ListingPatch) Apply(l *Listing) error {
	next := *l
	if p.Category != nil {
		c, err := ParseCategory(*p.Category)
		if err != nil {
			return err
		}
		next.Category = c
	}
	if p.Status != nil {
		st, err := ParseStatus(*p.Status)
		if err != nil {
			return err
		}
		next.Status = st
	}
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Price != nil {
		price := *p.Price
		next.Price = &price
	}
	if p.Longitude != nil {
		next.Longitude = *p.Longitude
	}
	if p.Latitude != nil {
		next.Latitude = *p.Latitude
	}
	if p.CustomerID != nil {
		next.CustomerID = *p.CustomerID
	}
	if p.Images != nil {
		next.Images = append([]string(nil), (*p.Images)...)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*l = next
	return nil
}

type ListingRepository interface {
	Save(ctx context.Context, l Listing) (Listing, error)
	FindByID(ctx context.Context, id string) (Listing, bool, error)
	Delete(ctx context.Context, id string) (Listing, bool, error)
	SearchByTitle(ctx context.Context, substring string) ([]Listing, error)
	List(ctx context.Context, offset, limit int) ([]Listing, int64, error)
}
