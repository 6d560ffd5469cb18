package domain

import (
	"context"
	"time"
)

// CustomerProfile 客户档案（读模型，与 DTO / 持久化实体分离）
type CustomerProfile struct {
	ID        string
	Name      string
	Email     string
	Password  string // 不透明，原样存储
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile 创建入参
type NewProfile struct {
	Name     string
	Email    string
	Password string
}

// ProfilePatch 部分更新：nil 表示不修改
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

// Apply 合并非空字段
func (p ProfilePatch) Apply(c *CustomerProfile) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Password != nil {
		c.Password = *p.Password
	}
}

// ProfileRepository 查不到返回 (零值, false, nil)，存储故障返回 error
type ProfileRepository interface {
	Save(ctx context.Context, p CustomerProfile) (CustomerProfile, error)
	FindByID(ctx context.Context, id string) (CustomerProfile, bool, error)
	Delete(ctx context.Context, id string) (CustomerProfile, bool, error)
	List(ctx context.Context, offset, limit int) ([]CustomerProfile, int64, error)
}
