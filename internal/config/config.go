// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

// Package config loads and validates application configuration.
//
// Configuration is layered with Koanf v2: struct defaults first, then an
// optional YAML file, then environment variables. Later layers override
// earlier ones, so ENV > file > defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the cinelens server.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DataConfig locates the MovieLens-format dataset files.
type DataConfig struct {
	MovieFile  string `koanf:"movie_file"`
	RatingFile string `koanf:"rating_file"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds API surface settings: rate limiting and CORS.
type APIConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig configures the recommendation engine and its models.
type RecommendConfig struct {
	SVD    SVDConfig    `koanf:"svd"`
	Hybrid HybridConfig `koanf:"hybrid"`
	Cache  CacheConfig  `koanf:"cache"`
	Limits LimitsConfig `koanf:"limits"`
}

// SVDConfig configures the collaborative model's factorization.
type SVDConfig struct {
	Factors    int   `koanf:"factors"`
	Iterations int   `koanf:"iterations"`
	Seed       int64 `koanf:"seed"`
}

// HybridConfig configures score blending.
type HybridConfig struct {
	DefaultWeight       float64 `koanf:"default_weight"`
	CandidateMultiplier int     `koanf:"candidate_multiplier"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

// LimitsConfig bounds recommendation list sizes.
type LimitsConfig struct {
	DefaultN int `koanf:"default_n"`
	MaxN     int `koanf:"max_n"`
}

// Validate checks the configuration for values that would make the server
// fail at runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Data.MovieFile == "" {
		return fmt.Errorf("data.movie_file is required")
	}
	if c.Data.RatingFile == "" {
		return fmt.Errorf("data.rating_file is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Recommend.SVD.Factors < 1 {
		return fmt.Errorf("recommend.svd.factors must be positive, got %d", c.Recommend.SVD.Factors)
	}
	if c.Recommend.SVD.Iterations < 1 {
		return fmt.Errorf("recommend.svd.iterations must be positive, got %d", c.Recommend.SVD.Iterations)
	}

	w := c.Recommend.Hybrid.DefaultWeight
	if w < 0 || w > 1 {
		return fmt.Errorf("recommend.hybrid.default_weight must be within [0, 1], got %g", w)
	}
	if c.Recommend.Hybrid.CandidateMultiplier < 1 {
		return fmt.Errorf("recommend.hybrid.candidate_multiplier must be positive, got %d",
			c.Recommend.Hybrid.CandidateMultiplier)
	}

	if c.Recommend.Cache.Enabled && c.Recommend.Cache.MaxEntries < 1 {
		return fmt.Errorf("recommend.cache.max_entries must be positive when the cache is enabled, got %d",
			c.Recommend.Cache.MaxEntries)
	}

	if c.Recommend.Limits.DefaultN < 1 {
		return fmt.Errorf("recommend.limits.default_n must be positive, got %d", c.Recommend.Limits.DefaultN)
	}
	if c.Recommend.Limits.MaxN < c.Recommend.Limits.DefaultN {
		return fmt.Errorf("recommend.limits.max_n (%d) must be >= default_n (%d)",
			c.Recommend.Limits.MaxN, c.Recommend.Limits.DefaultN)
	}

	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("api.rate_limit_reqs must be positive, got %d", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
		}
	}

	return nil
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
