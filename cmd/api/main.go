package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"toyshop/internal/core/auth"
	"toyshop/internal/core/cache"
	"toyshop/internal/core/config"
	"toyshop/internal/core/database"
	"toyshop/internal/core/logger"
	"toyshop/internal/core/server"
	"toyshop/internal/domain"
	"toyshop/internal/repo"
	"toyshop/internal/service"
	"toyshop/internal/transport/http/handler"
	"toyshop/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Product{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 会话 token
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.SessionTTLHours) * time.Hour,
	}

	// 商品列表缓存，没配 redis 就直连库
	var rc *cache.Cache
	if cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("catalog cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	// 依赖装配
	catalogSvc := service.NewCatalogService(repo.NewProductRepo(db), rc)
	authSvc := service.NewAuthService(repo.NewUserRepo(db), jwter)
	images := service.NewImageStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxSizeMB)

	r := router.NewAPIEngine(router.Deps{
		Log:        log,
		JWT:        jwter,
		CookieName: cfg.JWT.CookieName,
		Auth: handler.NewAuthHandler(authSvc, handler.CookieOpts{
			Name:   cfg.JWT.CookieName,
			TTL:    time.Duration(cfg.JWT.SessionTTLHours) * time.Hour,
			Secure: cfg.App.Env != "local",
		}, cfg.Admin.Email, cfg.Admin.Password),
		Products:         handler.NewProductHandler(catalogSvc),
		Admin:            handler.NewAdminProductHandler(catalogSvc, images, log),
		UploadDir:        cfg.Upload.Dir,
		UploadPublicPath: cfg.Upload.PublicPath,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("storefront api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("products", baseURL+"/api/products"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("storefront api start FAILED", zap.Error(err))
		}
	}()
	log.Info("storefront api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("storefront api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File == "" {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     true,
		Filename:   cfg.Log.File,
		MaxSizeMB:  100,
		MaxBackups: 7,
		MaxAgeDays: 30,
		Compress:   true,
	})
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
