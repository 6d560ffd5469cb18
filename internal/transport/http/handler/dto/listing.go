package dto

import (
	"go-gin-gorm-marketplace/internal/domain"
)

// CreateListingRequest 枚举以字符串传入，由 service 解析
type CreateListingRequest struct {
	Title       string   `json:"title"       binding:"required,max=255"`
	Description string   `json:"description" binding:"max=4000"`
	Price       *float64 `json:"price"`
	Longitude   *float64 `json:"longitude"   binding:"required"`
	Latitude    *float64 `json:"latitude"    binding:"required"`
	Category    string   `json:"category"    binding:"required"`
	CustomerID  string   `json:"customerId"  binding:"required"`
	Status      string   `json:"status"      binding:"required"`
	Images      []string `json:"images"`
}

func (r CreateListingRequest) ToDomain() domain.NewListing {
	return domain.NewListing{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Longitude:   *r.Longitude,
		Latitude:    *r.Latitude,
		Category:    r.Category,
		CustomerID:  r.CustomerID,
		Status:      r.Status,
		Images:      r.Images,
	}
}

// UpdateListingRequest 缺省字段保持原值
type UpdateListingRequest struct {
	ID          string    `json:"id"          binding:"required"`
	Title       *string   `json:"title"       binding:"omitempty,max=255"`
	Description *string   `json:"description" binding:"omitempty,max=4000"`
	Price       *float64  `json:"price"`
	Longitude   *float64  `json:"longitude"`
	Latitude    *float64  `json:"latitude"`
	Category    *string   `json:"category"`
	CustomerID  *string   `json:"customerId"`
	Status      *string   `json:"status"`
	Images      *[]string `json:"images"`
}

func (r UpdateListingRequest) ToPatch() domain.ListingPatch {
	return domain.ListingPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Longitude:   r.Longitude,
		Latitude:    r.Latitude,
		Category:    r.Category,
		CustomerID:  r.CustomerID,
		Status:      r.Status,
		Images:      r.Images,
	}
}

// SearchListingRequest 标题子串（不区分大小写）
type SearchListingRequest struct {
	Title string `json:"title" binding:"required"`
}

// ListingDetails 对外输出；时间为毫秒时间戳
type ListingDetails struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Longitude   float64  `json:"longitude"`
	Latitude    float64  `json:"latitude"`
	Category    string   `json:"category"`
	CustomerID  string   `json:"customerId"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	StarCount   int      `json:"starCount"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

func ListingFromDomain(l domain.Listing) ListingDetails {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return ListingDetails{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Longitude:   l.Longitude,
		Latitude:    l.Latitude,
		Category:    string(l.Category),
		CustomerID:  l.CustomerID,
		Status:      string(l.Status),
		Images:      images,
		StarCount:   l.StarCount,
		CreatedAt:   l.CreatedAt.UnixMilli(),
		UpdatedAt:   l.UpdatedAt.UnixMilli(),
	}
}

func ListingsFromDomain(ls []domain.Listing) []ListingDetails {
	out := make([]ListingDetails, 0, len(ls))
	for _, l := range ls {
		out = append(out, ListingFromDomain(l))
	}
	return out
}

// Page 管理端分页查询
type Page struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=20"`
}

// Normalize limit 缺省 20，上限 100
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// PageOf 管理端列表输出
type PageOf[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}
