package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func serve(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func codeOf(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var m struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return m.Code
}

func TestRequestID(t *testing.T) {
	r := engine(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, http.MethodGet, "/", nil)
	if rid := w.Header().Get(KeyRequestID); rid == "" || rid != w.Body.String() {
		t.Errorf("generated rid %q, body %q", rid, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	r.ServeHTTP(w, req)
	if w.Header().Get(KeyRequestID) != "abc" {
		t.Errorf("incoming rid not propagated")
	}
}

func TestRateLimit(t *testing.T) {
	r := engine(RateLimit(1, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := serve(r, http.MethodGet, "/", nil); w.Code != http.StatusNoContent {
		t.Fatalf("first = %d", w.Code)
	}
	w := serve(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusTooManyRequests || codeOf(t, w) != 429 {
		t.Errorf("second = %d %s", w.Code, w.Body.String())
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := engine(RateLimitPerIP(1, 1, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	from := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1"
		r.ServeHTTP(w, req)
		return w.Code
	}
	if from("10.0.0.1") != http.StatusNoContent || from("10.0.0.2") != http.StatusNoContent {
		t.Fatal("first request per ip should pass")
	}
	if from("10.0.0.1") != http.StatusTooManyRequests {
		t.Error("second request from same ip should be limited")
	}

	// 并发访问 bucket map
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); from("10.0.0.3") }()
	}
	wg.Wait()
}

func TestConcurrencyLimit_ReleasesSlot(t *testing.T) {
	r := engine(ConcurrencyLimit(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		if w := serve(r, http.MethodGet, "/", nil); w.Code != http.StatusNoContent {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := engine(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusNoContent)
	})
	if w := serve(r, http.MethodPost, "/", strings.NewReader("tiny")); w.Code != http.StatusNoContent {
		t.Errorf("small body = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/", bytes.NewReader(make([]byte, 64))); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("large body = %d", w.Code)
	}
}

func TestTimeout(t *testing.T) {
	r := engine(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })
	w := serve(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusGatewayTimeout || codeOf(t, w) != 504 {
		t.Errorf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := engine(Recovery(zap.New(core)))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusInternalServerError || codeOf(t, w) != 500 {
		t.Errorf("status %d body %s", w.Code, w.Body.String())
	}
	if logs.Len() == 0 {
		t.Error("panic not logged")
	}
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	if again := NewHTTPMetrics(reg); again.total != m.total {
		t.Error("re-registration should reuse collectors")
	}

	r := engine(m.Handler())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	serve(r, http.MethodGet, "/things/1", nil)
	serve(r, http.MethodGet, "/things/2", nil)
	serve(r, http.MethodGet, "/nowhere", nil)

	if got := testutil.ToFloat64(m.total.WithLabelValues("/things/:id", "GET", "200")); got != 2 {
		t.Errorf("route counter = %v", got)
	}
	if got := testutil.ToFloat64(m.total.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Errorf("unmatched counter = %v", got)
	}
}

func TestAccessLog_MasksSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := engine(RequestID(), AccessLog(zap.New(core)))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	serve(r, http.MethodGet, "/x?password=hunter2&q=1", nil)
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(200) || fields["rid"] == "" {
		t.Errorf("fields = %v", fields)
	}
	q := fields["query"].(map[string][]string)
	if q["password"][0] != "****" || q["q"][0] != "1" {
		t.Errorf("query = %v", q)
	}
}

func TestRequestID_RejectsUnsafeValues(t *testing.T) {
	r := engine(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for _, bad := range []string{"has space", "line\tbreak", strings.Repeat("a", 65)} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(KeyRequestID, bad)
		r.ServeHTTP(w, req)
		if got := w.Header().Get(KeyRequestID); got == bad || got == "" {
			t.Errorf("rid %q was propagated as %q", bad, got)
		}
	}
}

func TestAccessLog_LevelsAndQuietPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := engine(AccessLog(zap.New(core)))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/health", nil)
	serve(r, http.MethodGet, "/boom", nil)
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("entries = %+v", entries)
	}
}
