package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/notifications/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Notifications: models.NotificationsConfig{ReadTimeoutMs: 200},
	}
}

func TestUnreadCount_ReadsCounter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").Return(int64(7), nil)

	uc := NewNotificationUC(testConfig(), mockRepo)

	count := uc.UnreadCount(context.Background(), "driver-1")
	assert.Equal(t, "driver-1", count.UserID)
	assert.Equal(t, int64(7), count.UnreadCount)
	assert.Equal(t, "7", count.Badge)
}

func TestUnreadCount_OutageFallsBackToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").
		Return(int64(0), errors.New("redis unavailable"))

	uc := NewNotificationUC(testConfig(), mockRepo)

	// Nothing observed yet in this process, so the fallback is zero
	count := uc.UnreadCount(context.Background(), "driver-1")
	assert.Equal(t, int64(0), count.UnreadCount)
	assert.Equal(t, "", count.Badge)
}

func TestUnreadCount_OutageServesLastKnownValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").Return(int64(5), nil),
		mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").
			Return(int64(0), errors.New("redis unavailable")),
	)

	uc := NewNotificationUC(testConfig(), mockRepo)

	first := uc.UnreadCount(context.Background(), "driver-1")
	require.Equal(t, int64(5), first.UnreadCount)

	degraded := uc.UnreadCount(context.Background(), "driver-1")
	assert.Equal(t, int64(5), degraded.UnreadCount)
	assert.Equal(t, "5", degraded.Badge)
}

func TestIncrementUnread_UpdatesLastKnown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().IncrementUnread(gomock.Any(), "driver-1").Return(int64(3), nil),
		mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").
			Return(int64(0), errors.New("redis unavailable")),
	)

	uc := NewNotificationUC(testConfig(), mockRepo)

	require.NoError(t, uc.IncrementUnread(context.Background(), "driver-1"))

	count := uc.UnreadCount(context.Background(), "driver-1")
	assert.Equal(t, int64(3), count.UnreadCount)
}

func TestMarkRead_ClearsCounterAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().IncrementUnread(gomock.Any(), "driver-1").Return(int64(4), nil),
		mockRepo.EXPECT().ClearUnread(gomock.Any(), "driver-1").Return(nil),
		mockRepo.EXPECT().GetUnread(gomock.Any(), "driver-1").
			Return(int64(0), errors.New("redis unavailable")),
	)

	uc := NewNotificationUC(testConfig(), mockRepo)

	require.NoError(t, uc.IncrementUnread(context.Background(), "driver-1"))
	require.NoError(t, uc.MarkRead(context.Background(), "driver-1"))

	// The degraded read reflects the clear, not the stale increment
	count := uc.UnreadCount(context.Background(), "driver-1")
	assert.Equal(t, int64(0), count.UnreadCount)
}

func TestMarkRead_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockNotificationRepo(ctrl)
	clearErr := errors.New("redis unavailable")
	mockRepo.EXPECT().ClearUnread(gomock.Any(), "driver-1").Return(clearErr)

	uc := NewNotificationUC(testConfig(), mockRepo)

	assert.ErrorIs(t, uc.MarkRead(context.Background(), "driver-1"), clearErr)
}

func TestBadgeText(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{0, ""},
		{-1, ""},
		{1, "1"},
		{99, "99"},
		{100, "99+"},
		{1000, "99+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeText(tt.count), "count %d", tt.count)
	}
}
