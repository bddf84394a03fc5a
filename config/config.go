package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Security  SecurityConfig  `mapstructure:"security"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Functions FunctionsConfig `mapstructure:"functions"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | mysql
	SQLitePath   string        `mapstructure:"sqlite_path"`
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	MySQLMaxOpen int           `mapstructure:"mysql_max_open"`
	MySQLMaxIdle int           `mapstructure:"mysql_max_idle"`
	MySQLMaxLife time.Duration `mapstructure:"mysql_max_life"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	LocalPubSubBuf  int           `mapstructure:"local_pubsub_buf"`
	// InventoryTTL controls how long a shop listing is served from cache.
	// Zero disables inventory caching.
	InventoryTTL time.Duration `mapstructure:"inventory_ttl"`
}

type SecurityConfig struct {
	// JWTSecret verifies bearer tokens minted by the identity provider.
	// Empty leaves mutating functions unauthenticated (local development only).
	JWTSecret string `mapstructure:"jwt_secret"`

	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	// MetricsAllowedIPs restricts /metrics. Empty allows everyone.
	MetricsAllowedIPs []string `mapstructure:"metrics_allowed_ips"`
}

type AuditConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Retention  time.Duration `mapstructure:"retention"`
	PurgeEvery time.Duration `mapstructure:"purge_every"`
}

type FunctionsConfig struct {
	// BasePath is the route prefix the query handlers are mounted under.
	BasePath string `mapstructure:"base_path"`
}

// Load reads config from the given YAML file path. A .env file in the
// working directory is loaded first; DATAPAD_* variables override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("datapad")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8888)
	v.SetDefault("server.debug", false)
	v.SetDefault("database.mode", "sqlite")
	v.SetDefault("database.sqlite_path", "./data/datapad.db")
	v.SetDefault("database.mysql_dsn", "")
	v.SetDefault("database.mysql_max_open", 20)
	v.SetDefault("database.mysql_max_idle", 5)
	v.SetDefault("database.mysql_max_life", "1h")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.local_gc_interval", "30s")
	v.SetDefault("cache.local_pubsub_buf", 64)
	v.SetDefault("cache.inventory_ttl", "30s")
	// Registered so AutomaticEnv can supply it without a file entry.
	v.SetDefault("security.jwt_secret", "")
	v.SetDefault("security.rate_limit_rps", 20)
	v.SetDefault("security.rate_limit_burst", 40)
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.retention", "720h")
	v.SetDefault("audit.purge_every", "1h")
	v.SetDefault("functions.base_path", "/.netlify/functions")
}
