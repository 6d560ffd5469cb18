package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ListingOp("create", OutcomeOK)
	c.ListingOp("create", OutcomeOK)
	c.ListingOp("create", OutcomeRejected)
	c.ProfileOp("get", OutcomeAbsent)

	if got := testutil.ToFloat64(c.listingOps.WithLabelValues("create", OutcomeOK)); got != 2 {
		t.Errorf("listing create ok = %v", got)
	}
	if got := testutil.ToFloat64(c.profileOps.WithLabelValues("get", OutcomeAbsent)); got != 1 {
		t.Errorf("profile get absent = %v", got)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 3 {
		t.Errorf("series = %d, %v", n, err)
	}
}

func TestNoop(t *testing.T) {
	var r Recorder = NewNoop()
	r.ProfileOp("x", OutcomeError)
	r.ListingOp("x", OutcomeError)
}
