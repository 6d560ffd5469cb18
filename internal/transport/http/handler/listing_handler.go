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

type ListingService interface {
	CreateListing(ctx context.Context, in domain.NewListing) (domain.Listing, error)
	GetListing(ctx context.Context, id string) (domain.Listing, bool, error)
	UpdateListing(ctx context.Context, id string, patch domain.ListingPatch) (domain.Listing, bool, error)
	DeleteListing(ctx context.Context, id string) (domain.Listing, bool, error)
	SearchByTitle(ctx context.Context, query string) ([]domain.Listing, error)
	ListListings(ctx context.Context, offset, limit int) ([]domain.Listing, int64, error)
}

type ListingHandler struct {
	svc ListingService
	log *zap.Logger
}

func NewListingHandler(svc ListingService, l *zap.Logger) *ListingHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ListingHandler{svc: svc, log: l}
}

// Mount 挂在 /v1/api/listings 下
func (h *ListingHandler) Mount(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.RegisterAction(ez, httpez.Action[dto.CreateListingRequest, dto.ListingDetails]{
		Method:  http.MethodPost,
		Path:    "/create-listing",
		Binder:  httpez.BindJSON,
		Handler: h.create,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.ListingDetails]{
		Method:  http.MethodPost,
		Path:    "/get-listing/:listingId",
		Binder:  httpez.BindNone,
		Handler: h.get,
	})
	httpez.RegisterAction(ez, httpez.Action[dto.UpdateListingRequest, dto.ListingDetails]{
		Method:  http.MethodPost,
		Path:    "/update-listing",
		Binder:  httpez.BindJSON,
		Handler: h.update,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.ListingDetails]{
		Method:  http.MethodPost,
		Path:    "/delete-listing/:listingId",
		Binder:  httpez.BindNone,
		Handler: h.delete,
	})
	httpez.RegisterAction(ez, httpez.Action[dto.SearchListingRequest, []dto.ListingDetails]{
		Method:  http.MethodPost,
		Path:    "/search-listing",
		Binder:  httpez.BindJSON,
		Handler: h.search,
	})
}

func (h *ListingHandler) create(c *gin.Context, in *dto.CreateListingRequest) (dto.ListingDetails, error) {
	l, err := h.svc.CreateListing(c.Request.Context(), in.ToDomain())
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return dto.ListingDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot create listing as customer with id %s was not found.", in.CustomerID))
	case domain.IsValidation(err):
		return dto.ListingDetails{}, httpez.Client(err.Error())
	case err != nil:
		return dto.ListingDetails{}, httpez.Internal("create listing failed", err)
	}
	return dto.ListingFromDomain(l), nil
}

func (h *ListingHandler) get(c *gin.Context, _ *struct{}) (dto.ListingDetails, error) {
	id := c.Param("listingId")
	l, ok, err := h.svc.GetListing(c.Request.Context(), id)
	if err != nil {
		return dto.ListingDetails{}, httpez.Internal("get listing failed", err)
	}
	if !ok {
		return dto.ListingDetails{}, httpez.Client(fmt.Sprintf("Cannot find listing with id %s.", id))
	}
	return dto.ListingFromDomain(l), nil
}

func (h *ListingHandler) update(c *gin.Context, in *dto.UpdateListingRequest) (dto.ListingDetails, error) {
	l, ok, err := h.svc.UpdateListing(c.Request.Context(), in.ID, in.ToPatch())
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return dto.ListingDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot update listing with id %s as customer was not found with given ID. (customerId %s)",
			in.ID, derefOr(in.CustomerID, "")))
	case domain.IsValidation(err):
		return dto.ListingDetails{}, httpez.Client(err.Error())
	case err != nil:
		return dto.ListingDetails{}, httpez.Internal("update listing failed", err)
	case !ok:
		return dto.ListingDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot update listing with id %s as listing was not found with given ID.", in.ID))
	}
	return dto.ListingFromDomain(l), nil
}

func (h *ListingHandler) delete(c *gin.Context, _ *struct{}) (dto.ListingDetails, error) {
	id := c.Param("listingId")
	l, ok, err := h.svc.DeleteListing(c.Request.Context(), id)
	if err != nil {
		return dto.ListingDetails{}, httpez.Internal("delete listing failed", err)
	}
	if !ok {
		return dto.ListingDetails{}, httpez.Client(fmt.Sprintf(
			"Cannot delete listing with id %s as listing was not found with given ID.", id))
	}
	return dto.ListingFromDomain(l), nil
}

// 空结果也按 4001 返回
func (h *ListingHandler) search(c *gin.Context, in *dto.SearchListingRequest) ([]dto.ListingDetails, error) {
	ls, err := h.svc.SearchByTitle(c.Request.Context(), in.Title)
	if err != nil {
		return nil, httpez.Internal("search listing failed", err)
	}
	if len(ls) == 0 {
		return nil, httpez.Client("Cannot find any listing with given search criteria.")
	}
	return dto.ListingsFromDomain(ls), nil
}

func derefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
