package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farhanputra/event-management-backend/config"
)

var RedisClient *redis.Client

// InitRedis connects the shared client. Redis backs the AI response cache and
// the realtime notification fanout; the API works without it, degraded.
func InitRedis(cfg *config.Config) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable at %s: %v", cfg.RedisAddr, err)
		return
	}
	log.Println("✅ Redis connected")
}

// CacheGet loads a cached JSON value into dest, reporting whether it was found
func CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if RedisClient == nil {
		return false
	}
	raw, err := RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// CacheSet stores a JSON value with a TTL, best effort
func CacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if RedisClient == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := RedisClient.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to cache %s: %v", key, err)
	}
}

// PublishRoom broadcasts a payload to a realtime room channel, fire-and-forget
func PublishRoom(ctx context.Context, room string, payload interface{}) {
	if RedisClient == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := RedisClient.Publish(ctx, "room:"+room, raw).Err(); err != nil {
		log.Printf("⚠️ Failed to publish to room %s: %v", room, err)
	}
}
