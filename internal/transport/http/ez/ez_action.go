package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "go-gin-gorm-marketplace/internal/transport/http/response"
)

// EZ 路由分组上的轻封装：绑定入参 → 调用 handler → 统一渲染响应
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象：Code 为业务码，Msg 返回给调用方，Err 只进日志
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

// Client 调用方可修正的失败（4001）
func Client(msg string) error { return &AErr{Code: resp.CodeClientError, Msg: msg} }

// Internal 基础设施故障：msg 与 err 只进日志，响应里是通用文案
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST"
	Path    string // 例："/get-listing/:listingId"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.ClientError(bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// 4001 类错误 HTTP 仍为 200；基础设施故障为 500，且不回显原因
func (e EZ) renderError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ae *AErr
	if errors.As(err, &ae) && ae.Code == resp.CodeClientError {
		c.JSON(http.StatusOK, resp.ClientError(ae.Msg))
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, resp.Error(resp.CodeTimeout, ""))
		return
	}
	e.log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("rid", c.GetString("X-Request-ID")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, ""))
}
