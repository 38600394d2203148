package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	Limits   LimitsConfig
	Fraud    FraudConfig
	Backend  BackendConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
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

// NSQConfig contains NSQ producer configuration
type NSQConfig struct {
	Address    string
	AuditTopic string
}

// LimitsConfig contains business limit configuration. All amounts are in
// minor units of the configured currency.
type LimitsConfig struct {
	Currencies     []string
	TransferCap    int64
	PaymentCap     int64
	OtherCap       int64
	DailyCap       int64
	MinAccountLen  int
	MaxAccountLen  int
}

// FraudConfig contains fraud scoring configuration
type FraudConfig struct {
	ReviewThreshold  float64
	BlockThreshold   float64
	VelocityLimit    int
	AmountThreshold  int64
	HistoryWindowMin int // recent-history window in minutes
	TimeoutSec       int // scoring time budget
}

// BackendConfig contains banking backend client configuration
type BackendConfig struct {
	URL             string
	Simulated       bool
	MaxAttempts     int
	BaseDelayMs     int
	MaxDelayMs      int
	AttemptTimeout  int // per-attempt timeout in seconds
	APIKey          string
}

// NewRelicConfig contains New Relic observability configuration
type NewRelicConfig struct {
	LicenseKey   string
	AppName      string
	Enabled      bool
	LogsEnabled  bool
	LogsEndpoint string
	LogsAPIKey   string
	ForwardLogs  bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
}
