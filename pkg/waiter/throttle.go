package waiter

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	rd "github.com/redis/go-redis/v9"
)

// Throttle decides whether a table may call a waiter again.
type Throttle interface {
	Allow(ctx context.Context, tableID string) (bool, error)
}

type redisThrottle struct {
	rdb      *rd.Client
	cooldown time.Duration
}

func NewRedisThrottle(rdb *rd.Client, cooldown time.Duration) Throttle {
	return &redisThrottle{rdb: rdb, cooldown: cooldown}
}

// Allow fails open: a redis outage must not stop guests reaching staff.
func (t *redisThrottle) Allow(ctx context.Context, tableID string) (bool, error) {
	ok, err := t.rdb.SetNX(ctx, WaiterCallKey(tableID), time.Now().Unix(), t.cooldown).Result()
	if err != nil {
		log.Warnw("waiter call throttle unavailable, allowing call", "table_id", tableID, "error", err)
		return true, nil
	}
	return ok, nil
}
