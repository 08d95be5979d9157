// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/filmoteca/config.yaml",
	"/etc/filmoteca/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:                   ":memory:",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
		},
		Catalog: CatalogConfig{
			Source:       SourceCSV,
			MoviesPath:   "data/movies_df.csv",
			CreditsPath:  "data/credit_df.csv",
			MinVoteCount: 2000,
		},
		Mongo: MongoConfig{
			URI:               "mongodb://localhost:27017",
			Database:          "filmoteca",
			MoviesCollection:  "movies",
			CreditsCollection: "credits",
			ConnectTimeout:    10 * time.Second,
			QueryTimeout:      2 * time.Minute,
			LoadAttempts:      5,
			RetryDelay:        5 * time.Second,
		},
		API: APIConfig{
			CacheTTL:       5 * time.Minute,
			MaxParamLength: 200,
			SuggestLimit:   5,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			RecommendRPS:      20,
			RecommendBurst:    40,
		},
		Recommend: RecommendConfig{
			Enabled:          true,
			Algorithms:       []string{"overview"},
			OverviewWeight:   1.0,
			PopularityWeight: 1.0,
			UseIDF:           true,
			DefaultK:         5,
			MaxK:             50,
			MinItems:         2,
			MaxCandidates:    50000,
			CacheTTL:         10 * time.Minute,
			DiversityLambda:  1.0,
			TrainOnStartup:   true,
			TrainInterval:    0,
			RetryInterval:    30 * time.Second,
			TrainTimeout:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.algorithms",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Catalog
	"catalog_source":   "catalog.source",
	"movies_csv_path":  "catalog.movies_path",
	"credits_csv_path": "catalog.credits_path",
	"min_vote_count":   "catalog.min_vote_count",

	// Mongo
	"mongo_uri":                "mongo.uri",
	"mongo_database":           "mongo.database",
	"mongo_movies_collection":  "mongo.movies_collection",
	"mongo_credits_collection": "mongo.credits_collection",
	"mongo_connect_timeout":    "mongo.connect_timeout",
	"mongo_query_timeout":      "mongo.query_timeout",
	"mongo_load_attempts":      "mongo.load_attempts",
	"mongo_retry_delay":        "mongo.retry_delay",

	// API
	"api_cache_ttl":        "api.cache_ttl",
	"api_max_param_length": "api.max_param_length",
	"api_suggest_limit":    "api.suggest_limit",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"recommend_rps":       "security.recommend_rps",
	"recommend_burst":     "security.recommend_burst",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine
	"recommend_enabled":           "recommend.enabled",
	"recommend_algorithms":        "recommend.algorithms",
	"recommend_overview_weight":   "recommend.overview_weight",
	"recommend_popularity_weight": "recommend.popularity_weight",
	"recommend_use_idf":           "recommend.use_idf",
	"recommend_default_k":         "recommend.default_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_min_items":         "recommend.min_items",
	"recommend_max_candidates":    "recommend.max_candidates",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_diversity_lambda":  "recommend.diversity_lambda",
	"recommend_train_on_startup":  "recommend.train_on_startup",
	"recommend_train_interval":    "recommend.train_interval",
	"recommend_retry_interval":    "recommend.retry_interval",
	"recommend_train_timeout":     "recommend.train_timeout",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped variables return "" so that unrelated environment does not leak in.
//
//   - HTTP_PORT -> server.port
//   - MOVIES_CSV_PATH -> catalog.movies_path
//   - RECOMMEND_ALGORITHMS -> recommend.algorithms
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
