// Package config loads runtime configuration from an optional app.yaml,
// with environment overrides and sane defaults for every knob, so the
// library works with zero configuration.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the intelligence core.
type Config struct {
	// Cache
	CacheBackend    string // memory | redis | mongo | hybrid
	CacheDisabled   bool   // bypass read+write, always recompute
	CacheTTL        time.Duration
	MemoryCacheSize int
	RedisURL        string
	RedisPrefix     string
	MongoURI        string
	MongoDatabase   string

	// Resolution
	DirectoryResultCap    int // per (name, region) query across partitions
	ViolationHistoryLimit int // most-recent violations kept on a snapshot
	RegistryPageSize      int // page size of the name-only fallback search

	// Recommendation
	TooManyThreshold int // area candidate count above which we refuse to rank

	// Bulk resolution
	BatchSize  int           // restaurants resolved per batch
	BatchDelay time.Duration // pause between batches (assumed provider rate limit)

	// Ambiguous-candidate ordering
	JWWeight  float64
	LevWeight float64
}

// Load reads config/app.yaml if present and applies env overrides
// (prefix RINTEL_, e.g. RINTEL_CACHE_BACKEND). Missing files are fine;
// defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.disabled", false)
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("cache.memory_size", 2048)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.redis_prefix", "rintel:")
	v.SetDefault("cache.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("cache.mongo_database", "restaurant_intel")

	v.SetDefault("resolve.directory_result_cap", 10)
	v.SetDefault("resolve.violation_history_limit", 3)
	v.SetDefault("resolve.registry_page_size", 20)

	v.SetDefault("recommend.too_many_threshold", 50)

	v.SetDefault("bulk.batch_size", 5)
	v.SetDefault("bulk.batch_delay", "1s")

	v.SetDefault("similarity.jw_weight", 0.6)
	v.SetDefault("similarity.lev_weight", 0.4)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		CacheBackend:    v.GetString("cache.backend"),
		CacheDisabled:   v.GetBool("cache.disabled"),
		CacheTTL:        v.GetDuration("cache.ttl"),
		MemoryCacheSize: v.GetInt("cache.memory_size"),
		RedisURL:        v.GetString("cache.redis_url"),
		RedisPrefix:     v.GetString("cache.redis_prefix"),
		MongoURI:        v.GetString("cache.mongo_uri"),
		MongoDatabase:   v.GetString("cache.mongo_database"),

		DirectoryResultCap:    v.GetInt("resolve.directory_result_cap"),
		ViolationHistoryLimit: v.GetInt("resolve.violation_history_limit"),
		RegistryPageSize:      v.GetInt("resolve.registry_page_size"),

		TooManyThreshold: v.GetInt("recommend.too_many_threshold"),

		BatchSize:  v.GetInt("bulk.batch_size"),
		BatchDelay: v.GetDuration("bulk.batch_delay"),

		JWWeight:  v.GetFloat64("similarity.jw_weight"),
		LevWeight: v.GetFloat64("similarity.lev_weight"),
	}, nil
}

// Default returns the built-in defaults without touching the filesystem.
func Default() *Config {
	return &Config{
		CacheBackend:    "memory",
		CacheTTL:        30 * time.Minute,
		MemoryCacheSize: 2048,
		RedisURL:        "redis://localhost:6379/0",
		RedisPrefix:     "rintel:",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "restaurant_intel",

		DirectoryResultCap:    10,
		ViolationHistoryLimit: 3,
		RegistryPageSize:      20,

		TooManyThreshold: 50,

		BatchSize:  5,
		BatchDelay: time.Second,

		JWWeight:  0.6,
		LevWeight: 0.4,
	}
}
