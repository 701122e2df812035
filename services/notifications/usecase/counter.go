package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/notifications"
)

// notificationUC implements the notifications.NotificationUC interface.
// Reads are bounded by a short timeout and fall back to the last counter
// value this process observed, so the badge endpoint stays fast and
// available through a counter-store outage.
type notificationUC struct {
	cfg  *models.Config
	repo notifications.NotificationRepo

	mu        sync.RWMutex
	lastKnown map[string]int64
}

// NewNotificationUC creates a new notification use case
func NewNotificationUC(cfg *models.Config, repo notifications.NotificationRepo) notifications.NotificationUC {
	return &notificationUC{
		cfg:       cfg,
		repo:      repo,
		lastKnown: make(map[string]int64),
	}
}

// UnreadCount returns the user's unread counter and its badge rendering
func (uc *notificationUC) UnreadCount(ctx context.Context, userID string) models.UnreadCount {
	timeout := time.Duration(uc.cfg.Notifications.ReadTimeoutMs) * time.Millisecond
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	count, err := uc.repo.GetUnread(readCtx, userID)
	if err != nil {
		count = uc.lastObserved(userID)
		logger.Warn("Unread counter read failed, serving last known value",
			logger.String("user_id", userID),
			logger.Int64("fallback_count", count),
			logger.Err(err))
	} else {
		uc.observe(userID, count)
	}

	return models.UnreadCount{
		UserID:      userID,
		UnreadCount: count,
		Badge:       BadgeText(count),
	}
}

// MarkRead clears the user's unread counter
func (uc *notificationUC) MarkRead(ctx context.Context, userID string) error {
	if err := uc.repo.ClearUnread(ctx, userID); err != nil {
		return err
	}
	uc.observe(userID, 0)
	return nil
}

// IncrementUnread bumps the user's unread counter
func (uc *notificationUC) IncrementUnread(ctx context.Context, userID string) error {
	count, err := uc.repo.IncrementUnread(ctx, userID)
	if err != nil {
		return err
	}
	uc.observe(userID, count)
	return nil
}

func (uc *notificationUC) observe(userID string, count int64) {
	uc.mu.Lock()
	uc.lastKnown[userID] = count
	uc.mu.Unlock()
}

func (uc *notificationUC) lastObserved(userID string) int64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.lastKnown[userID]
}

// BadgeText renders a counter the way mobile clients expect:
// empty for zero, "99+" above ninety-nine, the number otherwise.
func BadgeText(count int64) string {
	switch {
	case count <= 0:
		return ""
	case count > 99:
		return "99+"
	default:
		return strconv.FormatInt(count, 10)
	}
}
