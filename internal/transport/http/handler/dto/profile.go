package dto

import (
	"go-gin-gorm-marketplace/internal/domain"
)

// CreateProfileRequest POST /profile/create-profile
type CreateProfileRequest struct {
	Name     string `json:"name"     binding:"required,max=128"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (r CreateProfileRequest) ToDomain() domain.NewProfile {
	return domain.NewProfile{Name: r.Name, Email: r.Email, Password: r.Password}
}

// UpdateProfileRequest 只更新出现的字段
type UpdateProfileRequest struct {
	ID       string  `json:"id"       binding:"required"`
	Name     *string `json:"name"     binding:"omitempty,max=128"`
	Email    *string `json:"email"    binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,max=255"`
}

func (r UpdateProfileRequest) ToPatch() domain.ProfilePatch {
	return domain.ProfilePatch{Name: r.Name, Email: r.Email, Password: r.Password}
}

// ProfileDetails 对外输出，不含密码
type ProfileDetails struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func ProfileFromDomain(p domain.CustomerProfile) ProfileDetails {
	return ProfileDetails{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}

func ProfilesFromDomain(ps []domain.CustomerProfile) []ProfileDetails {
	out := make([]ProfileDetails, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProfileFromDomain(p))
	}
	return out
}
