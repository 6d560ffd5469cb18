package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-marketplace/internal/domain"
)

// ProfileService 客户档案：负责 ID / 时间戳生成与存在性判断
type ProfileService struct {
	store domain.Store
	options
}

func NewProfileService(store domain.Store, opts ...Option) *ProfileService {
	return &ProfileService{store: store, options: buildOptions(opts)}
}

func (s *ProfileService) CreateProfile(ctx context.Context, in domain.NewProfile) (domain.CustomerProfile, error) {
	now := s.clock()
	p := domain.CustomerProfile{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var saved domain.CustomerProfile
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		var e error
		saved, e = tx.Profiles().Save(ctx, p)
		return e
	})
	s.observe("create", p.ID, true, err)
	if err != nil {
		return domain.CustomerProfile{}, err
	}
	return saved, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (domain.CustomerProfile, bool, error) {
	p, ok, err := s.store.Profiles().FindByID(ctx, id)
	s.observe("get", id, ok, err)
	return p, ok, err
}

// UpdateProfile id 不存在时返回 found=false；否则合并字段并刷新 UpdatedAt
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (domain.CustomerProfile, bool, error) {
	var (
		saved domain.CustomerProfile
		found bool
	)
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		cur, ok, err := tx.Profiles().FindByID(ctx, id)
		if err != nil || !ok {
			return err
		}
		found = true
		next := cur
		patch.Apply(&next)
		next.UpdatedAt = s.touch(cur.UpdatedAt)
		saved, err = tx.Profiles().Save(ctx, next)
		return err
	})
	s.observe("update", id, found, err)
	if err != nil {
		return domain.CustomerProfile{}, false, err
	}
	return saved, found, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) (domain.CustomerProfile, bool, error) {
	var (
		deleted domain.CustomerProfile
		found   bool
	)
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		var e error
		deleted, found, e = tx.Profiles().Delete(ctx, id)
		return e
	})
	s.observe("delete", id, found, err)
	if err != nil {
		return domain.CustomerProfile{}, false, err
	}
	return deleted, found, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context, offset, limit int) ([]domain.CustomerProfile, int64, error) {
	items, total, err := s.store.Profiles().List(ctx, offset, limit)
	s.observe("list", "", true, err)
	return items, total, err
}

func (s *ProfileService) observe(op, id string, found bool, err error) {
	out := outcome(found, err)
	s.rec.ProfileOp(op, out)
	switch {
	case err != nil && !domain.IsClientError(err):
		s.log.Error("profile op failed", zap.String("op", op), zap.String("id", id), zap.Error(err))
	case err != nil:
		s.log.Info("profile op rejected", zap.String("op", op), zap.String("id", id), zap.Error(err))
	default:
		s.log.Debug("profile op", zap.String("op", op), zap.String("id", id), zap.String("outcome", out))
	}
}
