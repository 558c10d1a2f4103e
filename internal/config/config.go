// Package config loads the server settings from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

type Config struct {
	Addr                string
	AllowOrigins        string
	MatchmakingInterval time.Duration
	LogLevel            log.Level
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		MatchmakingInterval: time.Second,
		LogLevel:            log.LevelInfo,
	}
}

// Load starts from Default and applies any CHESS_* variables that are set.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("CHESS_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CHESS_ALLOW_ORIGINS"); ok && v != "" {
		cfg.AllowOrigins = v
	}
	if v, ok := lookup("CHESS_MATCHMAKING_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "CHESS_MATCHMAKING_INTERVAL")
		}
		if d <= 0 {
			return Config{}, errors.Errorf("CHESS_MATCHMAKING_INTERVAL must be positive, got %s", d)
		}
		cfg.MatchmakingInterval = d
	}
	if v, ok := lookup("CHESS_LOG_LEVEL"); ok && v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, errors.Errorf("CHESS_LOG_LEVEL: unknown level %q", s)
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
