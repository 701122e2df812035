package models

// Config represents application configuration
type Config struct {
	App           AppConfig
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	NATS          NATSConfig
	Booking       BookingConfig
	Search        SearchConfig
	Notifications NotificationsConfig
	NewRelic      NewRelicConfig
	Logger        LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// BookingConfig contains seat reservation configuration
type BookingConfig struct {
	HoldTTLSeconds       int `json:"hold_ttl_seconds"`       // How long a reservation hold stays valid before auto-release
	SweepIntervalSeconds int `json:"sweep_interval_seconds"` // How often the background sweep reclaims expired holds
}

// SearchConfig contains ride search configuration
type SearchConfig struct {
	RadiusKm              float64 `json:"radius_km"`               // Proximity radius for matching origin/destination cities
	RetireIntervalSeconds int     `json:"retire_interval_seconds"` // How often departed rides are soft-retired from search
}

// NotificationsConfig contains unread counter configuration
type NotificationsConfig struct {
	ReadTimeoutMs int `json:"read_timeout_ms"` // Upper bound for a single unread-count read
}

// NewRelicConfig contains New Relic observability configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
