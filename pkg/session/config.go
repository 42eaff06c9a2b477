package session

import "time"

// Config holds session lifetimes and the cookie name.
type Config struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	AnonIdleTimeout time.Duration `env:"SESSION_ANON_IDLE_TIMEOUT" envDefault:"30m"`
	AnonMaxLifetime time.Duration `env:"SESSION_ANON_MAX_LIFETIME" envDefault:"24h"`
	AuthIdleTimeout time.Duration `env:"SESSION_AUTH_IDLE_TIMEOUT" envDefault:"168h"`
	AuthMaxLifetime time.Duration `env:"SESSION_AUTH_MAX_LIFETIME" envDefault:"720h"`

	// ActivityUpdateThreshold is the minimum time between activity writes.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// Store selects "memory" or "redis".
	Store       string `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		AnonIdleTimeout:         30 * time.Minute,
		AnonMaxLifetime:         24 * time.Hour,
		AuthIdleTimeout:         7 * 24 * time.Hour,
		AuthMaxLifetime:         30 * 24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		Store:                   "memory",
		RedisPrefix:             defaultRedisPrefix,
	}
}

func (c Config) timeouts(authenticated bool) (idle, maxLife time.Duration) {
	if authenticated {
		return c.AuthIdleTimeout, c.AuthMaxLifetime
	}
	return c.AnonIdleTimeout, c.AnonMaxLifetime
}
