package constants

// Redis key prefixes
const (
	// KeyUnreadCount is the per-user unread notification counter, suffixed with the user ID
	KeyUnreadCount = "notifications:unread:%s"
)
