package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Opts struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "sqlite", "":
		// 本地默认用文件库，目录不存在就先建
		if dir := filepath.Dir(o.DSN); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		dial = sqlite.Open(o.DSN)
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(normalizeMySQLDSN(o.DSN))
	default:
		return nil, ErrUnsupportedDriver
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存
		SkipDefaultTransaction: true, // 单语句操作不包事务
	})
	return db, nil
}

// normalizeMySQLDSN 给 go-sql-driver 的 DSN 补上 parseTime/charset 默认项
func normalizeMySQLDSN(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return in
	}
	sep := "?"
	if strings.Contains(in, "?") {
		sep = "&"
	}
	if !strings.Contains(in, "parseTime=") {
		in += sep + "parseTime=true"
		sep = "&"
	}
	if !strings.Contains(in, "charset=") {
		in += sep + "charset=utf8mb4"
	}
	return in
}
