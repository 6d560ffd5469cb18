package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"go-gin-gorm-marketplace/internal/core/config"
	"go-gin-gorm-marketplace/internal/service"
	"go-gin-gorm-marketplace/internal/testutil"
	"go-gin-gorm-marketplace/internal/transport/http/handler"
	mdw "go-gin-gorm-marketplace/internal/transport/http/middleware"
)

func testDeps(ready func(context.Context) error) Deps {
	reg := prometheus.NewRegistry()
	return Deps{
		Mode: gin.TestMode,
		Limits: config.Limits{
			RPS: 1000, Burst: 1000, Concurrency: 10, MaxBodyBytes: 1 << 20, TimeoutSec: 5,
		},
		Metrics:  mdw.NewHTTPMetrics(reg),
		Gatherer: reg,
		Ready:    ready,
	}
}

func apiEngine(ready func(context.Context) error) *gin.Engine {
	store := testutil.NewMemStore()
	return NewAPIEngine(testDeps(ready),
		handler.NewProfileHandler(service.NewProfileService(store), nil),
		handler.NewListingHandler(service.NewListingService(store), nil),
	)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	if w := get(apiEngine(func(context.Context) error { return nil }), "/health"); w.Code != http.StatusOK {
		t.Errorf("healthy = %d", w.Code)
	}
	w := get(apiEngine(func(context.Context) error { return errors.New("down") }), "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy = %d", w.Code)
	}
}

func TestAPIEngine_RoutesAndMetrics(t *testing.T) {
	r := apiEngine(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/api/profile/create-profile",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"code":200`) {
		t.Fatalf("create-profile = %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(mdw.KeyRequestID) == "" {
		t.Error("request id header missing")
	}

	m := get(r, "/metrics")
	if m.Code != http.StatusOK || !strings.Contains(m.Body.String(), `http_requests_total{method="POST",path="/v1/api/profile/create-profile",status="200"} 1`) {
		t.Errorf("metrics = %s", m.Body.String())
	}
}

func TestAdminEngine(t *testing.T) {
	store := testutil.NewMemStore()
	profiles := service.NewProfileService(store)
	listings := service.NewListingService(store)
	r := NewAdminEngine(testDeps(nil), handler.NewAdminHandler(profiles, listings, nil))

	w := get(r, "/admin/v1/profiles?offset=0&limit=500")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total":0`) {
		t.Errorf("profiles = %d %s", w.Code, w.Body.String())
	}
	if w := get(r, "/v1/api/profile/get-profile/x"); w.Code != http.StatusNotFound {
		t.Errorf("public routes must not be mounted on admin: %d", w.Code)
	}
}

type prioritized struct {
	p     int
	order *[]int
}

func (m prioritized) Mount(*gin.RouterGroup) { *m.order = append(*m.order, m.p) }
func (m prioritized) Priority() int          { return m.p }

func TestMountAll_Priority(t *testing.T) {
	var order []int
	g := gin.New().Group("/")
	mountAll(g,
		Route{Prefix: "/b", Module: prioritized{p: 20, order: &order}},
		Route{Prefix: "/a", Module: prioritized{p: 10, order: &order}},
	)
	if len(order) != 2 || order[0] != 10 || order[1] != 20 {
		t.Errorf("mount order = %v", order)
	}
}
