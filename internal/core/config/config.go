package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
	File  string // 非空则同时写文件并按大小切割
}

type JWT struct {
	Secret          string
	Issuer          string
	SessionTTLHours int    // 会话有效期，默认 7 天
	CookieName      string // 会话 cookie 名
}

type Redis struct {
	Addr     string `mapstructure:"addr"` // 留空则关闭商品列表缓存
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string // sqlite / mysql / postgres
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Admin struct {
	Email    string // bootstrap 管理员账号
	Password string
}

type Upload struct {
	Dir        string // 磁盘目录
	PublicPath string // 对外 URL 前缀，如 /uploads
	MaxSizeMB  int
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Admin  Admin
	Upload Upload
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.JWT.SessionTTLHours <= 0 {
		c.JWT.SessionTTLHours = 7 * 24
	}
	if c.JWT.CookieName == "" {
		c.JWT.CookieName = "auth"
	}
	if c.Admin.Email == "" {
		c.Admin.Email = "owner@example.com"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "./public/uploads"
	}
	if c.Upload.PublicPath == "" {
		c.Upload.PublicPath = "/uploads"
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 5
	}
	return &c
}
