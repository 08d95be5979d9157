// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

// Package config loads Filmoteca configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence (lowest first).
//
// Environment variables use flat legacy names (HTTP_PORT, MOVIES_CSV_PATH,
// RECOMMEND_ALGORITHMS, ...) that are mapped onto the nested koanf paths by
// envTransformFunc. Unknown variables are ignored.
package config

import "time"

// Catalog source names.
const (
	SourceCSV   = "csv"
	SourceMongo = "mongo"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Mongo     MongoConfig     `koanf:"mongo"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings. The catalog is always held in memory,
// so Path is ":memory:" unless a caller wants to inspect the tables on disk.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// CatalogConfig selects where the movies and credits tables come from.
type CatalogConfig struct {
	Source       string `koanf:"source"` // csv or mongo
	MoviesPath   string `koanf:"movies_path"`
	CreditsPath  string `koanf:"credits_path"`
	MinVoteCount int64  `koanf:"min_vote_count"`
}

// MongoConfig is only read when Catalog.Source is "mongo".
type MongoConfig struct {
	URI               string        `koanf:"uri"`
	Database          string        `koanf:"database"`
	MoviesCollection  string        `koanf:"movies_collection"`
	CreditsCollection string        `koanf:"credits_collection"`
	ConnectTimeout    time.Duration `koanf:"connect_timeout"`
	QueryTimeout      time.Duration `koanf:"query_timeout"`

	// LoadAttempts bounds how often a failed catalog fetch is tried.
	LoadAttempts int           `koanf:"load_attempts"`
	RetryDelay   time.Duration `koanf:"retry_delay"`
}

// APIConfig holds response caching and request limits.
type APIConfig struct {
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	MaxParamLength int           `koanf:"max_param_length"`
	SuggestLimit   int           `koanf:"suggest_limit"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// RecommendRPS and RecommendBurst bound the process-wide rate of
	// recommendation requests, independent of the per-IP limiter.
	RecommendRPS   float64 `koanf:"recommend_rps"`
	RecommendBurst int     `koanf:"recommend_burst"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	Enabled          bool          `koanf:"enabled"`
	Algorithms       []string      `koanf:"algorithms"` // overview, popularity
	OverviewWeight   float64       `koanf:"overview_weight"`
	PopularityWeight float64       `koanf:"popularity_weight"`
	UseIDF           bool          `koanf:"use_idf"`
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	MinItems         int           `koanf:"min_items"`
	MaxCandidates    int           `koanf:"max_candidates"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	DiversityLambda  float64       `koanf:"diversity_lambda"` // 1.0 disables MMR
	TrainOnStartup   bool          `koanf:"train_on_startup"`
	TrainInterval    time.Duration `koanf:"train_interval"` // 0 = train once
	RetryInterval    time.Duration `koanf:"retry_interval"` // retry delay until the first model exists
	TrainTimeout     time.Duration `koanf:"train_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads the layered configuration. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
