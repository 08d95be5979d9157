// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/filmoteca/internal/validation"
)

// Allowed values, in validator oneof syntax.
const (
	logLevels    = "oneof=trace debug info warn error"
	logFormats   = "oneof=json console"
	algorithms   = "oneof=overview popularity"
	environments = "oneof=development staging production"
)

// check runs a single validator rule, naming the failure after the
// environment variable that sets it.
func check(envVar string, value interface{}, tag string) error {
	if verr := validation.ValidateVar(envVar, value, tag); verr != nil {
		return verr
	}
	return nil
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if err := check("HTTP_PORT", c.Server.Port, "min=1,max=65535"); err != nil {
		return err
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return check("ENVIRONMENT", c.Server.Environment, "omitempty,"+environments)
}

// validateCatalog checks the selected source has what it needs.
func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case SourceCSV:
		if strings.TrimSpace(c.Catalog.MoviesPath) == "" {
			return fmt.Errorf("MOVIES_CSV_PATH is required when CATALOG_SOURCE=csv")
		}
		if strings.TrimSpace(c.Catalog.CreditsPath) == "" {
			return fmt.Errorf("CREDITS_CSV_PATH is required when CATALOG_SOURCE=csv")
		}
	case SourceMongo:
		return c.validateMongo()
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: csv, mongo (got %q)", c.Catalog.Source)
	}

	if c.Catalog.MinVoteCount < 0 {
		return fmt.Errorf("MIN_VOTE_COUNT must be non-negative")
	}
	return nil
}

func (c *Config) validateMongo() error {
	if !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		return fmt.Errorf("MONGO_URI must start with mongodb:// or mongodb+srv://")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required when CATALOG_SOURCE=mongo")
	}
	if c.Mongo.MoviesCollection == "" || c.Mongo.CreditsCollection == "" {
		return fmt.Errorf("MONGO_MOVIES_COLLECTION and MONGO_CREDITS_COLLECTION are required")
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGO_CONNECT_TIMEOUT must be positive")
	}
	if err := check("MONGO_LOAD_ATTEMPTS", c.Mongo.LoadAttempts, "min=1,max=20"); err != nil {
		return err
	}
	if c.Mongo.RetryDelay < 0 {
		return fmt.Errorf("MONGO_RETRY_DELAY must not be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxParamLength < 1 {
		return fmt.Errorf("API_MAX_PARAM_LENGTH must be at least 1")
	}
	return check("API_SUGGEST_LIMIT", c.API.SuggestLimit, "min=0,max=50")
}

func (c *Config) validateSecurity() error {
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateCORS()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Security.RecommendRPS < 0 {
		return fmt.Errorf("RECOMMEND_RPS must be non-negative")
	}
	if c.Security.RecommendRPS > 0 && c.Security.RecommendBurst < 1 {
		return fmt.Errorf("RECOMMEND_BURST must be at least 1 when RECOMMEND_RPS is set")
	}
	return nil
}

// validateCORS rejects a wildcard origin in production.
func (c *Config) validateCORS() error {
	if !c.IsProduction() {
		return nil
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if !c.Recommend.Enabled {
		return nil
	}

	if len(c.Recommend.Algorithms) == 0 {
		return fmt.Errorf("RECOMMEND_ALGORITHMS must list at least one algorithm")
	}
	if err := check("RECOMMEND_ALGORITHMS", c.Recommend.Algorithms, "dive,"+algorithms); err != nil {
		return err
	}

	if c.Recommend.OverviewWeight < 0 || c.Recommend.PopularityWeight < 0 {
		return fmt.Errorf("recommendation weights must be non-negative")
	}
	if c.Recommend.DefaultK < 1 || c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1 and not exceed RECOMMEND_MAX_K")
	}
	if err := check("RECOMMEND_DIVERSITY_LAMBDA", c.Recommend.DiversityLambda, "gte=0,lte=1"); err != nil {
		return err
	}
	if c.Recommend.TrainInterval < 0 {
		return fmt.Errorf("RECOMMEND_TRAIN_INTERVAL must be non-negative")
	}
	if c.Recommend.RetryInterval < 0 {
		return fmt.Errorf("RECOMMEND_RETRY_INTERVAL must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if err := check("LOG_LEVEL", c.Logging.Level, logLevels); err != nil {
		return err
	}
	return check("LOG_FORMAT", c.Logging.Format, "omitempty,"+logFormats)
}
