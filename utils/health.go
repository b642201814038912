package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckInterval = 60 * time.Second

// HealthStatus is the latest backing-store snapshot served on /health.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the backing stores once at startup and then on
// a fixed interval, keeping the snapshot fresh for the health endpoint.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ctx := context.Background()
		probeHealth(ctx, redisClients, mongoClient)

		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for range ticker.C {
			probeHealth(ctx, redisClients, mongoClient)
		}
	}()
}

func probeHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) {
	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}
	mongoHealthy := mongoClient.Ping(ctx, nil) == nil

	healthMu.Lock()
	currentHealth = HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
