package router

import (
	"github.com/gin-gonic/gin"

	"go-gin-gorm-marketplace/internal/transport/http/handler"
)

// NewAdminEngine 后台端：/admin/v1/profiles 与 /admin/v1/listings（只读）
func NewAdminEngine(d Deps, admin *handler.AdminHandler) *gin.Engine {
	d = d.withDefaults()
	r := newEngine(d, "admin")

	mountAll(r.Group("/admin/v1"), Route{Prefix: "", Module: admin})
	return r
}
