package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-marketplace/internal/domain"
	httpez "go-gin-gorm-marketplace/internal/transport/http/ez"
	"go-gin-gorm-marketplace/internal/transport/http/handler/dto"
)

// ProfileService handler 依赖的最小接口
type ProfileService interface {
	CreateProfile(ctx context.Context, in domain.NewProfile) (domain.CustomerProfile, error)
	GetProfile(ctx context.Context, id string) (domain.CustomerProfile, bool, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (domain.CustomerProfile, bool, error)
	DeleteProfile(ctx context.Context, id string) (domain.CustomerProfile, bool, error)
	ListProfiles(ctx context.Context, offset, limit int) ([]domain.CustomerProfile, int64, error)
}

type ProfileHandler struct {
	svc ProfileService
	log *zap.Logger
}

func NewProfileHandler(svc ProfileService, l *zap.Logger) *ProfileHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ProfileHandler{svc: svc, log: l}
}

// Mount 挂在 /v1/api/profile 下
func (h *ProfileHandler) Mount(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.RegisterAction(ez, httpez.Action[dto.CreateProfileRequest, dto.ProfileDetails]{
		Method:  http.MethodPost,
		Path:    "/create-profile",
		Binder:  httpez.BindJSON,
		Handler: h.create,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.ProfileDetails]{
		Method:  http.MethodPost,
		Path:    "/get-profile/:customerId",
		Binder:  httpez.BindNone,
		Handler: h.get,
	})
	httpez.RegisterAction(ez, httpez.Action[dto.UpdateProfileRequest, dto.ProfileDetails]{
		Method:  http.MethodPost,
		Path:    "/update-profile",
		Binder:  httpez.BindJSON,
		Handler: h.update,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.ProfileDetails]{
		Method:  http.MethodPost,
		Path:    "/delete-profile/:customerId",
		Binder:  httpez.BindNone,
		Handler: h.delete,
	})
}

func (h *ProfileHandler) create(c *gin.Context, in *dto.CreateProfileRequest) (dto.ProfileDetails, error) {
	p, err := h.svc.CreateProfile(c.Request.Context(), in.ToDomain())
	if err != nil {
		return dto.ProfileDetails{}, httpez.Internal("create profile failed", err)
	}
	return dto.ProfileFromDomain(p), nil
}

func (h *ProfileHandler) get(c *gin.Context, _ *struct{}) (dto.ProfileDetails, error) {
	id := c.Param("customerId")
	p, ok, err := h.svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		return dto.ProfileDetails{}, httpez.Internal("get profile failed", err)
	}
	if !ok {
		return dto.ProfileDetails{}, httpez.Client(fmt.Sprintf("Cannot find customer with id %s.", id))
	}
	return dto.ProfileFromDomain(p), nil
}

func (h *ProfileHandler) update(c *gin.Context, in *dto.UpdateProfileRequest) (dto.ProfileDetails, error) {
	p, ok, err := h.svc.UpdateProfile(c.Request.Context(), in.ID, in.ToPatch())
	if err != nil {
		return dto.ProfileDetails{}, httpez.Internal("update profile failed", err)
	}
	if !ok {
		return dto.ProfileDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot update customer profile with id %s as it was not found with given ID.", in.ID))
	}
	return dto.ProfileFromDomain(p), nil
}

func (h *ProfileHandler) delete(c *gin.Context, _ *struct{}) (dto.ProfileDetails, error) {
	id := c.Param("customerId")
	p, ok, err := h.svc.DeleteProfile(c.Request.Context(), id)
	switch {
	case errors.Is(err, domain.ErrProfileHasListings):
		return dto.ProfileDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot delete customer profile with id %s, as it still owns listings.", id))
	case err != nil:
		return dto.ProfileDetails{}, httpez.Internal("delete profile failed", err)
	case !ok:
		return dto.ProfileDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot delete customer profile with id %s, as it's not found.", id))
	}
	return dto.ProfileFromDomain(p), nil
}
