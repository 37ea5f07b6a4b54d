package onedb

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// DefaultCharset is applied when Config.Charset is empty.
const DefaultCharset = "utf8mb4"

// Config holds the connection settings for a manager.
// All fields are fixed once the manager is built.
type Config struct {
	// Driver allows overriding the sql driver (e.g., "mysql" in prod, "sqlmock" in tests).
	Driver string
	// DSN, when non-empty, is used verbatim and wins over the field-based build.
	DSN      string
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Charset  string
	// Params are extra DSN query parameters (e.g., parseTime=true).
	Params  map[string]string
	Logging LoggingConfig
}

// dsnFromConfig returns a DSN string.
// Priority: if Config.DSN is non-empty, return it unchanged.
// Otherwise build from host/port/username/password/database/charset/params.
func dsnFromConfig(c Config) (string, error) {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN, nil
	}
	addr := c.Host
	if c.Port > 0 {
		addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	dbEscaped := url.PathEscape(c.Database)

	// The charset travels as a DSN parameter so it is applied at connect time.
	params := make(map[string]string, len(c.Params)+1)
	for k, v := range c.Params {
		params[k] = v
	}
	if _, ok := params["charset"]; !ok {
		cs := c.Charset
		if cs == "" {
			cs = DefaultCharset
		}
		params["charset"] = cs
	}

	// Build query params in stable order for test determinism
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, url.QueryEscape(params[k])))
	}
	q := strings.Join(parts, "&")

	// auth part: do not URL-encode password; mysql driver expects raw.
	// A password with an empty username still emits ":pass@".
	auth := ""
	if c.Username != "" || c.Password != "" {
		auth = c.Username
		if c.Password != "" {
			auth += ":" + c.Password
		}
		auth += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, addr, dbEscaped)
	if q != "" {
		dsn += "?" + q
	}
	return dsn, nil
}
