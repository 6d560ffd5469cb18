package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go-gin-gorm-marketplace/internal/domain"
)

type memData struct {
	profiles map[string]domain.CustomerProfile
	listings map[string]domain.Listing
}

func (d *memData) clone() *memData {
	c := &memData{
		profiles: make(map[string]domain.CustomerProfile, len(d.profiles)),
		listings: make(map[string]domain.Listing, len(d.listings)),
	}
	for k, v := range d.profiles {
		c.profiles[k] = v
	}
	for k, v := range d.listings {
		v.Images = append([]string(nil), v.Images...)
		c.listings[k] = v
	}
	return c
}

// MemStore 内存版 domain.Store：事务整体加锁，失败时回滚到快照；
// 外键语义与数据库一致（listing 引用不存在的客户 / 删除仍被引用的客户）
type MemStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool

	// Err 非空时所有仓储操作直接返回该错误（模拟存储故障）
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{
		mu: &sync.Mutex{},
		data: &memData{
			profiles: map[string]domain.CustomerProfile{},
			listings: map[string]domain.Listing{},
		},
	}
}

func (s *MemStore) Profiles() domain.ProfileRepository { return memProfiles{s} }
func (s *MemStore) Listings() domain.ListingRepository { return memListings{s} }

func (s *MemStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	tx := &MemStore{mu: s.mu, data: s.data, inTx: true, Err: s.Err}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

// ListingCount 当前 listing 数量（断言“未写入”用）
func (s *MemStore) ListingCount() int {
	unlock := s.lock()
	defer unlock()
	return len(s.data.listings)
}

func (s *MemStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memProfiles struct{ s *MemStore }

func (r memProfiles) Save(_ context.Context, p domain.CustomerProfile) (domain.CustomerProfile, error) {
	if r.s.Err != nil {
		return domain.CustomerProfile{}, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	r.s.data.profiles[p.ID] = p
	return p, nil
}

func (r memProfiles) FindByID(_ context.Context, id string) (domain.CustomerProfile, bool, error) {
	if r.s.Err != nil {
		return domain.CustomerProfile{}, false, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	p, ok := r.s.data.profiles[id]
	return p, ok, nil
}

func (r memProfiles) Delete(_ context.Context, id string) (domain.CustomerProfile, bool, error) {
	if r.s.Err != nil {
		return domain.CustomerProfile{}, false, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	p, ok := r.s.data.profiles[id]
	if !ok {
		return domain.CustomerProfile{}, false, nil
	}
	for _, l := range r.s.data.listings {
		if l.CustomerID == id {
			return domain.CustomerProfile{}, false, domain.ErrProfileHasListings
		}
	}
	delete(r.s.data.profiles, id)
	return p, true, nil
}

func (r memProfiles) List(_ context.Context, offset, limit int) ([]domain.CustomerProfile, int64, error) {
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	all := make([]domain.CustomerProfile, 0, len(r.s.data.profiles))
	for _, p := range r.s.data.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, offset, limit), int64(len(all)), nil
}

type memListings struct{ s *MemStore }

func (r memListings) Save(_ context.Context, l domain.Listing) (domain.Listing, error) {
	if r.s.Err != nil {
		return domain.Listing{}, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.profiles[l.CustomerID]; !ok {
		return domain.Listing{}, domain.ErrCustomerNotFound
	}
	l.Images = append([]string{}, l.Images...)
	r.s.data.listings[l.ID] = l
	return l, nil
}

func (r memListings) FindByID(_ context.Context, id string) (domain.Listing, bool, error) {
	if r.s.Err != nil {
		return domain.Listing{}, false, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	l, ok := r.s.data.listings[id]
	return l, ok, nil
}

func (r memListings) Delete(_ context.Context, id string) (domain.Listing, bool, error) {
	if r.s.Err != nil {
		return domain.Listing{}, false, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	l, ok := r.s.data.listings[id]
	if !ok {
		return domain.Listing{}, false, nil
	}
	delete(r.s.data.listings, id)
	return l, true, nil
}

func (r memListings) SearchByTitle(_ context.Context, substring string) ([]domain.Listing, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	q := strings.ToLower(substring)
	out := []domain.Listing{}
	for _, l := range r.s.data.listings {
		if strings.Contains(strings.ToLower(l.Title), q) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memListings) List(_ context.Context, offset, limit int) ([]domain.Listing, int64, error) {
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}
	unlock := r.s.lock()
	defer unlock()
	all := make([]domain.Listing, 0, len(r.s.data.listings))
	for _, l := range r.s.data.listings {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, offset, limit), int64(len(all)), nil
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
