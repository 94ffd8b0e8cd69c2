// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"outreach/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client (webhook dedupe, PageSpeed results).
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// Deduper remembers keys for a while so repeated deliveries can be dropped.
type Deduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewDeduper(client *redis.Client, prefix string, ttl time.Duration) *Deduper {
	return &Deduper{client: client, prefix: prefix, ttl: ttl}
}

// FirstSeen reports whether key is new. Redis failures count as new so a
// cache outage never drops messages.
func (d *Deduper) FirstSeen(ctx context.Context, key string) bool {
	if d == nil || d.client == nil || key == "" {
		return true
	}
	ok, err := d.client.SetNX(ctx, d.prefix+key, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Forget drops key so the next FirstSeen reports it as new again.
func (d *Deduper) Forget(ctx context.Context, key string) {
	if d == nil || d.client == nil || key == "" {
		return
	}
	d.client.Del(ctx, d.prefix+key)
}
