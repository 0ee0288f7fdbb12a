package standings

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string // memory (default), redis or sqlite
	RedisAddr  string
	Namespace  string
	SQLitePath string
}

// NewStore builds the configured backend. Callers still need to call Init.
func NewStore(opts Options) (Store, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		return NewRedisStore(&redis.Options{Addr: opts.RedisAddr}, opts.Namespace)
	case "sqlite":
		return newSQLiteStore(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", opts.Backend)
	}
}
