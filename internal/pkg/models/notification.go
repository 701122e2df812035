package models

// UnreadCount is the per-user unread notification counter exposed to clients
type UnreadCount struct {
	UserID      string `json:"user_id"`
	UnreadCount int64  `json:"unread_count"`
	Badge       string `json:"badge"`
}
