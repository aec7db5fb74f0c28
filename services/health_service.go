package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

// HealthService pings the backing stores. The Redis client may be nil when
// the persisted rate cache is disabled; that reports as degraded, not down.
type HealthService struct {
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	version     string
}

func NewHealthService(dbPool *pgxpool.Pool, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		dbPool:      dbPool,
		redisClient: redisClient,
		version:     version,
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := map[string]types.HealthComponent{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}

	overall := types.HealthStatusUp
	for _, component := range components {
		switch component.Status {
		case types.HealthStatusDown:
			overall = types.HealthStatusDown
		case types.HealthStatusDegraded:
			if overall != types.HealthStatusDown {
				overall = types.HealthStatusDegraded
			}
		}
	}

	return types.HealthCheck{
		Status:     overall,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if h.dbPool == nil {
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Database not configured"}
	}
	if err := h.dbPool.Ping(ctx); err != nil {
		logger.GetLogger().Errorw("Database health check failed", "error", err)
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Database connection failed"}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if h.redisClient == nil {
		return types.HealthComponent{Status: types.HealthStatusDegraded, Details: "Rate cache disabled"}
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{Status: types.HealthStatusDegraded, Details: "Redis connection failed"}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
