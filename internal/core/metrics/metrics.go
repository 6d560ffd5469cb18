package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 结果标签
const (
	OutcomeOK       = "ok"
	OutcomeAbsent   = "absent"
	OutcomeRejected = "rejected" // 引用/校验失败
	OutcomeError    = "error"    // 基础设施故障
)

// Recorder 业务指标埋点；service 层只依赖该接口
type Recorder interface {
	ProfileOp(op, outcome string)
	ListingOp(op, outcome string)
}

type Collector struct {
	profileOps *prometheus.CounterVec
	listingOps *prometheus.CounterVec
}

// NewCollector 创建并注册到 reg（传 nil 则用默认注册表）
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		profileOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_profile_operations_total",
			Help: "Customer profile operations by op and outcome",
		}, []string{"op", "outcome"}),
		listingOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_listing_operations_total",
			Help: "Listing operations by op and outcome",
		}, []string{"op", "outcome"}),
	}
	reg.MustRegister(c.profileOps, c.listingOps)
	return c
}

func (c *Collector) ProfileOp(op, outcome string) { c.profileOps.WithLabelValues(op, outcome).Inc() }
func (c *Collector) ListingOp(op, outcome string) { c.listingOps.WithLabelValues(op, outcome).Inc() }

type noop struct{}

// NewNoop 丢弃所有指标（测试 / 未配置时使用）
func NewNoop() Recorder { return noop{} }

func (noop) ProfileOp(string, string) {}
func (noop) ListingOp(string, string) {}
