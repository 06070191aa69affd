package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avasiliev/personal-planner-backend/internal/config"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const (
	notificationsKey   = "notifications"
	notificationsIDKey = "notifications:id"
)

// NotificationRepository queues reminder notifications until the client
// fetches them. IDs come from a Redis counter, so they stay monotonic
// across restarts instead of depending on in-process state.
type NotificationRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewNotificationRepository(pool *redis.Pool, logger *zap.SugaredLogger) *NotificationRepository {
	return &NotificationRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *NotificationRepository) Add(ctx context.Context, n *model.Notification) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	id, err := redis.Int64(conn.Do("INCR", notificationsIDKey))
	if err != nil {
		return fmt.Errorf("INCR: %w", err)
	}
	n.ID = id

	blob, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if _, err := conn.Do("RPUSH", notificationsKey, blob); err != nil {
		return fmt.Errorf("RPUSH: %w", err)
	}
	if _, err := conn.Do("EXPIRE", notificationsKey, int(config.NotificationsTTL().Seconds())); err != nil {
		return fmt.Errorf("EXPIRE: %w", err)
	}

	return nil
}

// Drain returns all queued notifications and clears the queue.
func (r *NotificationRepository) Drain(ctx context.Context) ([]*model.Notification, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer r.close(conn)

	blobs, err := redis.ByteSlices(conn.Do("LRANGE", notificationsKey, 0, -1))
	if err != nil {
		if err == redis.ErrNil {
			return nil, nil
		}
		return nil, fmt.Errorf("LRANGE: %w", err)
	}

	if _, err := conn.Do("DEL", notificationsKey); err != nil {
		return nil, fmt.Errorf("DEL: %w", err)
	}

	res := make([]*model.Notification, 0, len(blobs))
	for _, blob := range blobs {
		var n model.Notification
		if err := json.Unmarshal(blob, &n); err != nil {
			r.logger.Errorw("Failed decoding notification", "err", err)
			continue
		}
		res = append(res, &n)
	}

	return res, nil
}

func (r *NotificationRepository) close(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		r.logger.Errorw("Failed closing connection", "err", err)
	}
}
