package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	// 先读缓存
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Version 读取命名空间当前版本号，key 里带上版本即可做整组失效
func (c *Cache) Version(ctx context.Context, ns string) int64 {
	n, err := c.RDB.Get(ctx, ns+":ver").Int64()
	if err != nil {
		return 0
	}
	return n
}

// Bump 让命名空间下的所有旧 key 失效（旧 key 靠 TTL 自然过期）
func (c *Cache) Bump(ctx context.Context, ns string) {
	_ = c.RDB.Incr(ctx, ns+":ver").Err()
}

func VersionedKey(ns string, ver int64, suffix string) string {
	return fmt.Sprintf("%s:v%d:%s", ns, ver, suffix)
}
