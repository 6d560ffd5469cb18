package domain

import "context"

// Store 聚合仓储并提供显式事务边界
type Store interface {
	Profiles() ProfileRepository
	Listings() ListingRepository
	// Transaction 回调内的 Store 绑定同一事务：返回 nil 提交，否则回滚
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
