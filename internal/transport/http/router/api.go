package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-marketplace/internal/core/config"
	"go-gin-gorm-marketplace/internal/core/server"
	"go-gin-gorm-marketplace/internal/transport/http/handler"
	mdw "go-gin-gorm-marketplace/internal/transport/http/middleware"
)

// Deps 两个引擎共用的基础设施
type Deps struct {
	Log      *zap.Logger
	Mode     string
	Limits   config.Limits
	Metrics  *mdw.HTTPMetrics    // nil 时注册到默认 registry
	Gatherer prometheus.Gatherer // /metrics 数据源，nil 时用默认
	Ready    func(ctx context.Context) error
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = mdw.NewHTTPMetrics(nil)
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	return d
}

// NewAPIEngine 公开端：/v1/api/profile/* 与 /v1/api/listings/*
func NewAPIEngine(d Deps, profiles *handler.ProfileHandler, listings *handler.ListingHandler) *gin.Engine {
	d = d.withDefaults()
	r := newEngine(d, "api",
		mdw.RateLimitPerIP(rate.Limit(d.Limits.RPS), d.Limits.Burst, 10*time.Minute),
	)

	api := r.Group("/v1/api")
	mountAll(api,
		Route{Prefix: "/profile", Module: profiles},
		Route{Prefix: "/listings", Module: listings},
	)
	return r
}

// 公共中间件链 + /health + /metrics
func newEngine(d Deps, name string, extra ...gin.HandlerFunc) *gin.Engine {
	r := server.NewRouter(server.Options{Name: name, Mode: d.Mode})

	chain := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.Recovery(d.Log),
		mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst),
	}
	chain = append(chain, extra...)
	chain = append(chain,
		mdw.ConcurrencyLimit(d.Limits.Concurrency),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.Limits.TimeoutSec)*time.Second),
		d.Metrics.Handler(),
		mdw.AccessLog(d.Log.Named(name)),
	)
	r.Use(chain...)

	r.GET("/health", health(d.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	return r
}

// 健康检查：带 DB ping
func health(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
