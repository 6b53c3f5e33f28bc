// Package activity publica el registro de actividad en un stream de Redis.
package activity

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	"github.com/jhoicas/visit-pipeline/pkg/config"
)

// DefaultStream nombre del stream si la configuración no trae uno.
const DefaultStream = "visits:activity"

// maxStreamLen recorte aproximado del stream.
const maxStreamLen = 100000

var _ repository.ActivityLog = (*StreamLog)(nil)

// StreamLog implementa ActivityLog con XADD.
type StreamLog struct {
	client redis.UniversalClient
	stream string
}

// NewRedisClient conecta con Redis y verifica con PING.
func NewRedisClient(ctx context.Context, cfg config.ActivityConfig) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewStreamLog construye el sink.
func NewStreamLog(client redis.UniversalClient, stream string) *StreamLog {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamLog{client: client, stream: stream}
}

// Record agrega una entrada al stream.
func (l *StreamLog) Record(ctx context.Context, e entity.ActivityEntry) error {
	at := e.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"user_id":    strconv.FormatInt(e.UserID, 10),
			"action":     e.Action,
			"details":    e.Details,
			"ip_address": e.IPAddress,
			"timestamp":  at.UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add activity to stream: %w", err)
	}
	return nil
}
