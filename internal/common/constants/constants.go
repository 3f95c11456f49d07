package constants

import "time"

type ContextKey string

const TraceIDKey ContextKey = "trace_id"

const (
	PasswordMinLength  = 6
	JWTSecretMinLength = 32
	DefaultBcryptCost  = 10

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second

	DefaultHTTPPort       = "3000"
	DefaultRequestTimeout = 5 * time.Second

	RateLimitCleanupInterval = 3 * time.Minute

	RateLimitGeneralRequestsPerSecond    = 50.0
	RateLimitGeneralBurst                = 100
	RateLimitCredentialRequestsPerSecond = 5.0
	RateLimitCredentialBurst             = 10
)
