package notifications

import "context"

// NotificationRepo defines the interface for unread-counter storage
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/numpang/numpang/services/notifications NotificationRepo
type NotificationRepo interface {
	IncrementUnread(ctx context.Context, userID string) (int64, error)
	GetUnread(ctx context.Context, userID string) (int64, error)
	ClearUnread(ctx context.Context, userID string) error
}
