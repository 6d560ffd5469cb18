package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module 业务模块：在给定分组上注册自己的路由
type Module interface{ Mount(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），不实现则默认 100
type prioritizer interface{ Priority() int }

// Route 模块 + 相对前缀
type Route struct {
	Prefix string
	Module Module
}

// mountAll 按优先级把模块挂到 parent/Prefix 下
func mountAll(parent *gin.RouterGroup, routes ...Route) {
	rs := append([]Route(nil), routes...)
	sort.SliceStable(rs, func(i, j int) bool {
		return priorityOf(rs[i].Module) < priorityOf(rs[j].Module)
	})
	for _, r := range rs {
		if r.Module == nil {
			continue
		}
		r.Module.Mount(parent.Group(r.Prefix))
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
