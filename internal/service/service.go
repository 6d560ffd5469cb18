package service

import (
	"time"

	"go.uber.org/zap"

	"go-gin-gorm-marketplace/internal/core/metrics"
	"go-gin-gorm-marketplace/internal/domain"
	"go-gin-gorm-marketplace/pkg/utils"
)

type options struct {
	log   *zap.Logger
	rec   metrics.Recorder
	now   func() time.Time
	newID func() string
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option          { return func(o *options) { o.log = l } }
func WithRecorder(r metrics.Recorder) Option   { return func(o *options) { o.rec = r } }
func WithClock(now func() time.Time) Option    { return func(o *options) { o.now = now } }
func WithIDGenerator(gen func() string) Option { return func(o *options) { o.newID = gen } }

func buildOptions(opts []Option) options {
	o := options{
		log:   zap.NewNop(),
		rec:   metrics.NewNoop(),
		now:   time.Now,
		newID: utils.NewID,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.rec == nil {
		o.rec = metrics.NewNoop()
	}
	return o
}

// 统一 UTC + 微秒精度，保证写库读回后时间戳不变
func (o options) clock() time.Time { return o.now().UTC().Truncate(time.Microsecond) }

// touch 返回严格晚于 prev 的更新时间
func (o options) touch(prev time.Time) time.Time {
	now := o.clock()
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

func outcome(found bool, err error) string {
	switch {
	case err == nil && found:
		return metrics.OutcomeOK
	case err == nil:
		return metrics.OutcomeAbsent
	case domain.IsClientError(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
