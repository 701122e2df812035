package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/numpang/numpang/internal/pkg/constants"
	"github.com/numpang/numpang/internal/pkg/database"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/notifications"
)

// NotificationRepo stores per-user unread counters in Redis
type NotificationRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(cfg *models.Config, redisClient *database.RedisClient) notifications.NotificationRepo {
	return &NotificationRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// IncrementUnread atomically bumps the user's unread counter
func (r *NotificationRepo) IncrementUnread(ctx context.Context, userID string) (int64, error) {
	key := fmt.Sprintf(constants.KeyUnreadCount, userID)
	count, err := r.redisClient.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment unread counter: %w", err)
	}
	return count, nil
}

// GetUnread returns the user's unread counter, zero when absent
func (r *NotificationRepo) GetUnread(ctx context.Context, userID string) (int64, error) {
	key := fmt.Sprintf(constants.KeyUnreadCount, userID)
	val, err := r.redisClient.Get(ctx, key)
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get unread counter: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unread counter is not a number: %w", err)
	}
	return count, nil
}

// ClearUnread resets the user's unread counter
func (r *NotificationRepo) ClearUnread(ctx context.Context, userID string) error {
	key := fmt.Sprintf(constants.KeyUnreadCount, userID)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear unread counter: %w", err)
	}
	return nil
}
