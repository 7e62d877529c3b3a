package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the typed view over viper so main and the serve command stay
// lean. Empty PostgresURL or RedisURL selects the in-memory implementation
// of the respective store.
type Config struct {
	Addr        string
	LogLevel    string
	PhoneRegion string

	PostgresURL string

	Redis Redis

	Session Session
}

// Redis captures connection tuning for the go-redis client.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Session controls the flash-session cookie. The six-second default mirrors
// the original deployment; flash delivery is deliberately best-effort.
type Session struct {
	CookieName string
	TTL        time.Duration
}

// SetDefaults registers every config key with its default value so a bare
// environment still yields a runnable server.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("phone_region", "ID")
	v.SetDefault("postgres_url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("session.cookie_name", "session_id")
	v.SetDefault("session.ttl", 6*time.Second)
}

// Load materializes the typed config from viper state.
func Load(v *viper.Viper) Config {
	return Config{
		Addr:        v.GetString("addr"),
		LogLevel:    v.GetString("log_level"),
		PhoneRegion: v.GetString("phone_region"),
		PostgresURL: v.GetString("postgres_url"),
		Redis: Redis{
			URL:          v.GetString("redis.url"),
			PoolSize:     v.GetInt("redis.pool_size"),
			MinIdleConns: v.GetInt("redis.min_idle_conns"),
			DialTimeout:  v.GetDuration("redis.dial_timeout"),
			ReadTimeout:  v.GetDuration("redis.read_timeout"),
			WriteTimeout: v.GetDuration("redis.write_timeout"),
		},
		Session: Session{
			CookieName: v.GetString("session.cookie_name"),
			TTL:        v.GetDuration("session.ttl"),
		},
	}
}
