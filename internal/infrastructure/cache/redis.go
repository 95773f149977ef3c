package cache

import (
	"context"
	"fmt"
	"net"

	"obstetrics-record-service/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to the redis instance holding the record keyspace
// and fails fast when it does not answer PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis record store at %s (db %d) unreachable: %w", addr, cfg.DB, err)
	}

	logrus.WithFields(logrus.Fields{
		"addr":   addr,
		"db":     cfg.DB,
		"prefix": cfg.KeyPrefix,
	}).Info("Redis record store connected")

	return client, nil
}
