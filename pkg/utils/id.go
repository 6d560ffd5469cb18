package utils

import "github.com/oklog/ulid/v2"

// NewID 生成实体主键（ULID，26 位，按时间有序）
func NewID() string { return ulid.Make().String() }
