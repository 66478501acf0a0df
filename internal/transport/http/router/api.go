package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"toyshop/internal/core/auth"
	"toyshop/internal/core/server"
	"toyshop/internal/transport/http/handler"
	mdw "toyshop/internal/transport/http/middleware"
)

type Deps struct {
	Log        *zap.Logger
	JWT        *auth.JWTer
	CookieName string

	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Admin    *handler.AdminProductHandler

	UploadDir        string // 上传文件的静态托管
	UploadPublicPath string
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewEngine(d.Log)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		corsWithCredentials(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 上传的商品图直接静态托管
	if d.UploadDir != "" && d.UploadPublicPath != "" {
		r.Static(d.UploadPublicPath, d.UploadDir)
	}

	guard := mdw.AuthSession(d.JWT, d.CookieName)

	api := r.Group("/api")
	{
		api.POST("/auth/login", d.Auth.Login)
		api.POST("/auth/logout", d.Auth.Logout)
		api.GET("/auth/me", guard, d.Auth.Me)

		api.GET("/products", d.Products.List)
		api.GET("/products/:slug", d.Products.GetBySlug)

		// bootstrap 不带会话，建号要赶在有号之前
		api.POST("/admin/bootstrap", d.Auth.Bootstrap)

		admin := api.Group("/admin", guard)
		{
			admin.POST("/products", d.Admin.Create)
			admin.PUT("/products/:id", d.Admin.Update)
			admin.DELETE("/products/:id", d.Admin.Delete)
		}
	}

	return r
}

// corsWithCredentials 带 cookie 的跨域：来源放开、credentials 打开
func corsWithCredentials() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(cfg)
}
