package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/service"
	"go-gin-gorm-marketplace/internal/testutil"
)

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type env struct {
	t     *testing.T
	r     *gin.Engine
	store *testutil.MemStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := testutil.NewMemStore()

	var n atomic.Int64
	clock := func() time.Time {
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n.Add(1)) * time.Millisecond)
	}
	var pid, lid atomic.Int64
	profiles := service.NewProfileService(store,
		service.WithClock(clock),
		service.WithIDGenerator(func() string { return fmt.Sprintf("C%d", pid.Add(1)) }))
	listings := service.NewListingService(store,
		service.WithClock(clock),
		service.WithIDGenerator(func() string { return fmt.Sprintf("L%d", lid.Add(1)) }))

	r := gin.New()
	api := r.Group("/v1/api")
	NewProfileHandler(profiles, nil).Mount(api.Group("/profile"))
	NewListingHandler(listings, nil).Mount(api.Group("/listings"))
	NewAdminHandler(profiles, listings, nil).Mount(r.Group("/admin/v1"))
	return &env{t: t, r: r, store: store}
}

func (e *env) call(method, path string, body any) (int, envelope) {
	e.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)

	var out envelope
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		e.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, out
}

func (e *env) post(path string, body any) envelope {
	e.t.Helper()
	code, out := e.call(http.MethodPost, path, body)
	if code != http.StatusOK {
		e.t.Fatalf("POST %s: status %d", path, code)
	}
	return out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
	return v
}

func expectClientError(t *testing.T, got envelope, msg string) {
	t.Helper()
	if got.Code != 4001 || got.Message != msg || len(got.Data) != 0 {
		t.Errorf("got %+v, want 4001 %q", got, msg)
	}
}

func (e *env) createProfile() map[string]any {
	e.t.Helper()
	out := e.post("/v1/api/profile/create-profile", map[string]any{
		"name": "Ann", "email": "ann@example.com", "password": "secret",
	})
	if out.Code != 200 {
		e.t.Fatalf("create profile: %+v", out)
	}
	return decode[map[string]any](e.t, out.Data)
}

func listingBody(customerID string) map[string]any {
	return map[string]any{
		"title":       "Vintage Record Player",
		"description": "Works fine",
		"price":       79.9,
		"longitude":   2.35,
		"latitude":    48.85,
		"category":    "MUSIC",
		"customerId":  customerID,
		"status":      "ACTIVE",
		"images":      []string{"front.jpg"},
	}
}

// 基础设施故障的 fn-field mock
type failingProfiles struct {
	getFn func(ctx context.Context, id string) (domain.CustomerProfile, bool, error)
}

func (f failingProfiles) CreateProfile(context.Context, domain.NewProfile) (domain.CustomerProfile, error) {
	return domain.CustomerProfile{}, errors.New("unused")
}
func (f failingProfiles) GetProfile(ctx context.Context, id string) (domain.CustomerProfile, bool, error) {
	return f.getFn(ctx, id)
}
func (f failingProfiles) UpdateProfile(context.Context, string, domain.ProfilePatch) (domain.CustomerProfile, bool, error) {
	return domain.CustomerProfile{}, false, errors.New("unused")
}
func (f failingProfiles) DeleteProfile(context.Context, string) (domain.CustomerProfile, bool, error) {
	return domain.CustomerProfile{}, false, errors.New("unused")
}
func (f failingProfiles) ListProfiles(context.Context, int, int) ([]domain.CustomerProfile, int64, error) {
	return nil, 0, errors.New("unused")
}
