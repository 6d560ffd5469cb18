package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpez "go-gin-gorm-marketplace/internal/transport/http/ez"
	"go-gin-gorm-marketplace/internal/transport/http/handler/dto"
)

// AdminHandler 后台只读分页列表
type AdminHandler struct {
	profiles ProfileService
	listings ListingService
	log      *zap.Logger
}

func NewAdminHandler(profiles ProfileService, listings ListingService, l *zap.Logger) *AdminHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AdminHandler{profiles: profiles, listings: listings, log: l}
}

// Mount 挂在 /admin/v1 下
func (h *AdminHandler) Mount(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	// --- GET /admin/v1/profiles ---
	httpez.RegisterAction(ez, httpez.Action[dto.Page, dto.PageOf[dto.ProfileDetails]]{
		Method: http.MethodGet,
		Path:   "/profiles",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *dto.Page) (dto.PageOf[dto.ProfileDetails], error) {
			p := in.Normalize()
			ps, total, err := h.profiles.ListProfiles(c.Request.Context(), p.Offset, p.Limit)
			if err != nil {
				return dto.PageOf[dto.ProfileDetails]{}, httpez.Internal("list profiles failed", err)
			}
			return dto.PageOf[dto.ProfileDetails]{Total: total, Items: dto.ProfilesFromDomain(ps)}, nil
		},
	})

	// --- GET /admin/v1/listings ---
	httpez.RegisterAction(ez, httpez.Action[dto.Page, dto.PageOf[dto.ListingDetails]]{
		Method: http.MethodGet,
		Path:   "/listings",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *dto.Page) (dto.PageOf[dto.ListingDetails], error) {
			p := in.Normalize()
			ls, total, err := h.listings.ListListings(c.Request.Context(), p.Offset, p.Limit)
			if err != nil {
				return dto.PageOf[dto.ListingDetails]{}, httpez.Internal("list listings failed", err)
			}
			return dto.PageOf[dto.ListingDetails]{Total: total, Items: dto.ListingsFromDomain(ls)}, nil
		},
	})
}
