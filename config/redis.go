package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs the OTP request throttle. A nil client disables
// throttling instead of blocking signups.
var RedisClient *redis.Client

// ConnectRedis dials Redis from REDIS_ADDR, REDIS_PASSWORD and REDIS_DB
// and keeps the client for GetRedisClient. A failed ping logs a warning
// and leaves the client nil.
func ConnectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           redisDB(),
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Println("OTP attempt throttling will be disabled")
		return nil
	}

	log.Println("Connected to Redis")
	RedisClient = client
	return client
}

// redisDB parses REDIS_DB, defaulting to database 0.
func redisDB() int {
	dbStr := os.Getenv("REDIS_DB")
	if dbStr == "" {
		return 0
	}
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Printf("Warning: invalid REDIS_DB %q, using 0", dbStr)
		return 0
	}
	return db
}

// GetRedisClient returns the shared client, or nil when Redis is down.
func GetRedisClient() *redis.Client {
	return RedisClient
}

// CloseRedis releases the connection pool on shutdown.
func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
