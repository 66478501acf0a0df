package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"toyshop/internal/core/config"
	"toyshop/internal/core/database"
	"toyshop/internal/core/logger"
	"toyshop/internal/domain"
	"toyshop/internal/repo"
	"toyshop/internal/service"
	"toyshop/pkg/utils"
)

// 建表 + 默认管理员 + 三件演示商品（商品表非空就跳过）
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Product{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	users := repo.NewUserRepo(db)
	authSvc := service.NewAuthService(users, nil)
	created, err := authSvc.Bootstrap(cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}
	if created {
		log.Info("admin user created", zap.String("email", cfg.Admin.Email))
	} else {
		log.Info("admin user exists", zap.String("email", cfg.Admin.Email))
	}

	products := repo.NewProductRepo(db)
	total, err := products.Count()
	if err != nil {
		log.Fatal("count products failed", zap.Error(err))
	}
	if total > 0 {
		log.Info("products already exist, skipping seed", zap.Int64("count", total))
		return
	}

	salePrice := int64(1499)
	demo := []domain.Product{
		{
			Name:        "LEGO Bricks Mix (Placeholder)",
			Description: "Classic colourful bricks for creative builds.",
			Category:    "Lego",
			PricePence:  1499,
			IsNew:       true, IsBestSeller: true,
			Stock:    18,
			ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0c/Lego_bricks.jpg/640px-Lego_bricks.jpg",
		},
		{
			Name:        "Teddy Bear Plush (Placeholder)",
			Description: "Soft plush teddy, gift-ready.",
			Category:    "Teddies",
			PricePence:  1299,
			IsNew:       true,
			Stock:       14,
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/3/3a/TeddyBears.jpg/640px-TeddyBears.jpg",
		},
		{
			Name:           "Jigsaw Puzzle 1000pc (Sale Placeholder)",
			Description:    "A relaxing 1000-piece challenge.",
			Category:       "Puzzles",
			PricePence:     1999,
			SalePricePence: &salePrice,
			IsBestSeller:   true, IsOnSale: true,
			Stock:    6,
			ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/6/6b/Jigsaw_puzzle_01_by_Scott_Cartwright.jpg/640px-Jigsaw_puzzle_01_by_Scott_Cartwright.jpg",
		},
	}
	for i := range demo {
		demo[i].Slug = utils.Slugify(demo[i].Name)
		if err := products.Create(&demo[i]); err != nil {
			log.Fatal("seed product failed", zap.String("slug", demo[i].Slug), zap.Error(err))
		}
	}
	log.Info("seeded products", zap.Int("count", len(demo)))
}
