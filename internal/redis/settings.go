package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const settingsPrefix = "settings:"

// SettingsRepository stores client preference blobs (theme, view options)
// as opaque JSON under their key. Last write wins, no schema.
type SettingsRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewSettingsRepository(pool *redis.Pool, logger *zap.SugaredLogger) *SettingsRepository {
	return &SettingsRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	blob, err := redis.Bytes(conn.Do("GET", settingsPrefix+key))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET: %w", err)
	}

	return blob, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key string, blob []byte) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	if _, err := conn.Do("SET", settingsPrefix+key, blob); err != nil {
		return fmt.Errorf("SET: %w", err)
	}

	return nil
}

func (r *SettingsRepository) close(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		r.logger.Errorw("Failed closing connection", "err", err)
	}
}
