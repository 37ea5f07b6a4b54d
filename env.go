package onedb

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names recognized by applyEnv.
const (
	EnvDSN      = "ONEDB_MYSQL_DSN"
	EnvDriver   = "ONEDB_MYSQL_DRIVER"
	EnvHost     = "ONEDB_MYSQL_HOST"
	EnvPort     = "ONEDB_MYSQL_PORT"
	EnvUsername = "ONEDB_MYSQL_USERNAME"
	EnvPassword = "ONEDB_MYSQL_PASSWORD"
	EnvDatabase = "ONEDB_MYSQL_DATABASE"
	EnvCharset  = "ONEDB_MYSQL_CHARSET"
	EnvParams   = "ONEDB_MYSQL_PARAMS"
)

// applyEnv overlays ONEDB_MYSQL_* environment variables onto cfg.
// Set variables win over the corresponding Config fields.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDSN); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		cfg.Driver = v
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvCharset); v != "" {
		cfg.Charset = v
	}
	if v := os.Getenv(EnvParams); v != "" {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		for _, pair := range strings.Split(v, "&") {
			k, val, ok := strings.Cut(pair, "=")
			if !ok || k == "" {
				continue
			}
			cfg.Params[k] = val
		}
	}
}
