package database

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestNormalizeMySQLDSN_PassesThroughDriverDSN(t *testing.T) {
	in := "app:secret@tcp(127.0.0.1:3306)/market?parseTime=true"
	if got := normalizeMySQLDSN(in, "", ""); got != in {
		t.Errorf("normalizeMySQLDSN() = %q, want unchanged", got)
	}
}

func TestNormalizeMySQLDSN_ConvertsJDBCURL(t *testing.T) {
	in := "jdbc:mysql://db:3306/market?useSSL=false&characterEncoding=utf8&serverTimezone=Asia%2FShanghai"
	got := normalizeMySQLDSN(in, "app", "pw")

	prefix := "app:pw@tcp(db:3306)/market?"
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("normalizeMySQLDSN() = %q, want prefix %q", got, prefix)
	}
	q, err := url.ParseQuery(strings.TrimPrefix(got, prefix))
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	want := map[string]string{
		"tls":       "false",
		"charset":   "utf8",
		"loc":       "Asia/Shanghai",
		"parseTime": "true",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
		}
	}
	for _, k := range []string{"useSSL", "characterEncoding", "serverTimezone"} {
		if q.Has(k) {
			t.Errorf("query still has JDBC param %s", k)
		}
	}
}

func TestNormalizeMySQLDSN_DefaultsUTCAndCharset(t *testing.T) {
	got := normalizeMySQLDSN("mysql://u@localhost:3306/db", "", "")
	q, _ := url.ParseQuery(got[strings.Index(got, "?")+1:])
	if q.Get("loc") != "UTC" || q.Get("charset") != "utf8mb4" {
		t.Errorf("defaults not applied: %q", got)
	}
}

func TestMaskDSN(t *testing.T) {
	got := maskDSN("app:secret@tcp(db:3306)/market")
	if got != "app:****@tcp(db:3306)/market" {
		t.Errorf("maskDSN() = %q", got)
	}
	if got := maskDSN("host=db user=app"); got != "host=db user=app" {
		t.Errorf("maskDSN() changed a DSN without credentials: %q", got)
	}
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("NewGorm() error = %v, want ErrUnsupportedDriver", err)
	}
}
