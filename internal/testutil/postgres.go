//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"go-gin-gorm-marketplace/internal/core/database"
	"go-gin-gorm-marketplace/internal/repo"
)

// OpenPostgres 启动 Postgres 16 容器（或复用 TEST_PG_DSN），完成迁移后返回 *gorm.DB。
// 容器在测试结束时销毁。
func OpenPostgres(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		pgC, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("marketplace"),
			postgres.WithUsername("marketplace"),
			postgres.WithPassword("marketplace"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

		dsn, err = pgC.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("connection string: %v", err)
		}
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             "postgres",
		DSN:                dsn,
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeMin: 5,
		LogLevel:           "silent",
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.Exec("TRUNCATE listings, customer_profiles").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}
