package notifications

import (
	"context"

	"github.com/numpang/numpang/internal/pkg/models"
)

// NotificationUC defines the interface for unread-counter business logic
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/numpang/numpang/services/notifications NotificationUC
type NotificationUC interface {
	// UnreadCount never fails; on a counter-store outage it degrades to the
	// last value observed in-process, or zero.
	UnreadCount(ctx context.Context, userID string) models.UnreadCount
	MarkRead(ctx context.Context, userID string) error
	IncrementUnread(ctx context.Context, userID string) error
}
