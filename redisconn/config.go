package redisconn

import "time"

// Config describes how to reach Redis. Fields are read from the
// environment by config.Load.
type Config struct {
	URL            string        `env:"REDIS_URL"`                           // redis://:password@host:6379/0, empty disables Redis
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"` // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a Redis URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
