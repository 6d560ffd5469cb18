package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/internal/transport/http/handler/dto"
)

func TestProfileLifecycle(t *testing.T) {
	e := newEnv(t)

	created := e.createProfile()
	if created["id"] != "C1" || created["name"] != "Ann" || created["email"] != "ann@example.com" {
		t.Fatalf("created = %v", created)
	}
	if _, ok := created["password"]; ok {
		t.Error("password must not be exposed")
	}

	got := e.post("/v1/api/profile/get-profile/C1", nil)
	p := decode[dto.ProfileDetails](t, got.Data)
	if got.Code != 200 || got.Message != "" || p.Name != "Ann" || p.CreatedAt > p.UpdatedAt {
		t.Errorf("get = %+v / %+v", got, p)
	}

	upd := e.post("/v1/api/profile/update-profile", map[string]any{"id": "C1", "name": "Anne"})
	up := decode[dto.ProfileDetails](t, upd.Data)
	if up.Name != "Anne" || up.Email != "ann@example.com" || up.UpdatedAt <= p.UpdatedAt {
		t.Errorf("update = %+v", up)
	}

	del := e.post("/v1/api/profile/delete-profile/C1", nil)
	if del.Code != 200 || decode[dto.ProfileDetails](t, del.Data).ID != "C1" {
		t.Errorf("delete = %+v", del)
	}
	expectClientError(t, e.post("/v1/api/profile/get-profile/C1", nil), "Cannot find customer with id C1.")
}

func TestProfileMessages(t *testing.T) {
	e := newEnv(t)

	expectClientError(t, e.post("/v1/api/profile/get-profile/nope", nil),
		"Cannot find customer with id nope.")
	expectClientError(t, e.post("/v1/api/profile/update-profile", map[string]any{"id": "nope", "name": "x"}),
		"Cannot update customer profile with id nope as it was not found with given ID.")
	expectClientError(t, e.post("/v1/api/profile/delete-profile/nope", nil),
		"Cannot delete customer profile with id nope, as it's not found.")
}

func TestDeleteProfile_OwnsListings(t *testing.T) {
	e := newEnv(t)
	e.createProfile()
	if out := e.post("/v1/api/listings/create-listing", listingBody("C1")); out.Code != 200 {
		t.Fatalf("create listing: %+v", out)
	}
	expectClientError(t, e.post("/v1/api/profile/delete-profile/C1", nil),
		"Cannot delete customer profile with id C1, as it still owns listings.")
}

func TestCreateProfile_BindFailure(t *testing.T) {
	e := newEnv(t)
	out := e.post("/v1/api/profile/create-profile", map[string]any{"name": "Ann", "email": "not-an-email", "password": "x"})
	if out.Code != 4001 || !strings.Contains(out.Message, "Email") {
		t.Errorf("got %+v", out)
	}
}

func TestGetProfile_InfrastructureFault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProfileHandler(failingProfiles{getFn: func(context.Context, string) (domain.CustomerProfile, bool, error) {
		return domain.CustomerProfile{}, false, errors.New("pq: connection refused")
	}}, nil).Mount(r.Group("/profile"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/profile/get-profile/C1", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "connection refused") || !strings.Contains(body, `"code":500`) {
		t.Errorf("body = %s", body)
	}
}
