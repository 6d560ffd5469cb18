package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-marketplace/internal/domain"
)

// ListingService 商品：保证每个 listing 引用的客户存在
type ListingService struct {
	store domain.Store
	options
}

func NewListingService(store domain.Store, opts ...Option) *ListingService {
	return &ListingService{store: store, options: buildOptions(opts)}
}

// CreateListing 顺序：枚举/字段校验（不访问存储）→ 事务内校验客户存在 → 写入
func (s *ListingService) CreateListing(ctx context.Context, in domain.NewListing) (domain.Listing, error) {
	l, err := s.newListing(in)
	if err != nil {
		s.observe("create", "", false, err)
		return domain.Listing{}, err
	}

	var saved domain.Listing
	err = s.store.Transaction(ctx, func(tx domain.Store) error {
		_, ok, err := tx.Profiles().FindByID(ctx, l.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCustomerNotFound
		}
		saved, err = tx.Listings().Save(ctx, l)
		return err
	})
	s.observe("create", l.ID, true, err)
	if err != nil {
		return domain.Listing{}, err
	}
	return saved, nil
}

func (s *ListingService) newListing(in domain.NewListing) (domain.Listing, error) {
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return domain.Listing{}, err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return domain.Listing{}, err
	}
	var price *float64
	if in.Price != nil {
		v := *in.Price
		price = &v
	}
	now := s.clock()
	l := domain.Listing{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		Longitude:   in.Longitude,
		Latitude:    in.Latitude,
		Category:    category,
		CustomerID:  in.CustomerID,
		Status:      status,
		Images:      append([]string{}, in.Images...),
		StarCount:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.Validate(); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *ListingService) GetListing(ctx context.Context, id string) (domain.Listing, bool, error) {
	l, ok, err := s.store.Listings().FindByID(ctx, id)
	s.observe("get", id, ok, err)
	return l, ok, err
}

// UpdateListing 先判断 listing 是否存在，再校验（若携带）customerId；任一失败都不修改已存数据
func (s *ListingService) UpdateListing(ctx context.Context, id string, patch domain.ListingPatch) (domain.Listing, bool, error) {
	var (
		saved domain.Listing
		found bool
	)
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		cur, ok, err := tx.Listings().FindByID(ctx, id)
		if err != nil || !ok {
			return err
		}
		found = true

		if patch.CustomerID != nil {
			_, exists, err := tx.Profiles().FindByID(ctx, *patch.CustomerID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrCustomerNotFound
			}
		}

		next := cur
		if err := patch.Apply(&next); err != nil {
			return err
		}
		next.UpdatedAt = s.touch(cur.UpdatedAt)
		saved, err = tx.Listings().Save(ctx, next)
		return err
	})
	s.observe("update", id, found, err)
	if err != nil {
		return domain.Listing{}, found, err
	}
	return saved, found, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id string) (domain.Listing, bool, error) {
	var (
		deleted domain.Listing
		found   bool
	)
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		var e error
		deleted, found, e = tx.Listings().Delete(ctx, id)
		return e
	})
	s.observe("delete", id, found, err)
	if err != nil {
		return domain.Listing{}, false, err
	}
	return deleted, found, nil
}

// SearchByTitle 无结果返回空切片，不是错误
func (s *ListingService) SearchByTitle(ctx context.Context, query string) ([]domain.Listing, error) {
	items, err := s.store.Listings().SearchByTitle(ctx, query)
	s.observe("search", "", len(items) > 0, err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ListingService) ListListings(ctx context.Context, offset, limit int) ([]domain.Listing, int64, error) {
	items, total, err := s.store.Listings().List(ctx, offset, limit)
	s.observe("list", "", true, err)
	return items, total, err
}

func (s *ListingService) observe(op, id string, found bool, err error) {
	out := outcome(found, err)
	s.rec.ListingOp(op, out)
	switch {
	case err != nil && !domain.IsClientError(err):
		s.log.Error("listing op failed", zap.String("op", op), zap.String("id", id), zap.Error(err))
	case err != nil:
		s.log.Info("listing op rejected", zap.String("op", op), zap.String("id", id), zap.Error(err))
	default:
		s.log.Debug("listing op", zap.String("op", op), zap.String("id", id), zap.String("outcome", out))
	}
}
