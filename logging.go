package onedb

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
	Level              slog.Level
}

var defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

func (m *Manager) configureLogging(cfg LoggingConfig) {
	m.slowQueryThreshold = cfg.SlowQueryThreshold
	if !cfg.Enabled {
		return
	}
	m.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level,
	}))
	m.loggingEnabled = true
}

// EnableLogging enables or disables structured logging for this manager.
func (m *Manager) EnableLogging(enabled bool) {
	if m == nil {
		return
	}
	m.loggingEnabled = enabled
	if enabled && m.logger == nil {
		m.logger = defaultLogger
	}
}

// SetLogger sets a custom logger for this manager.
func (m *Manager) SetLogger(logger *slog.Logger) {
	if m == nil {
		return
	}
	m.logger = logger
}

// SetSlowQueryThreshold sets the duration above which statements log at
// warn level. Zero disables slow statement detection.
func (m *Manager) SetSlowQueryThreshold(d time.Duration) {
	if m == nil {
		return
	}
	m.slowQueryThreshold = d
}

// logQuery logs statement execution with structured fields.
func (m *Manager) logQuery(ctx context.Context, query string, argCount int, duration time.Duration, err error) {
	if m == nil || !m.loggingEnabled || m.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("query", query),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}
	if argCount > 0 {
		// arguments themselves stay out of the log
		attrs = append(attrs, slog.Int("arg_count", argCount))
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		if n := ErrorNumber(err); n != 0 {
			attrs = append(attrs, slog.Int("error_code", int(n)))
		}
	} else {
		attrs = append(attrs, slog.String("status", "success"))
	}

	if m.slowQueryThreshold > 0 && duration > m.slowQueryThreshold {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "slow query detected", attrs...)
		return
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	m.logger.LogAttrs(ctx, level, "database query executed", attrs...)
}

// logConnection logs connection lifecycle events.
func (m *Manager) logConnection(ctx context.Context, event string, duration time.Duration, err error) {
	if m == nil || !m.loggingEnabled || m.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("event", event),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		m.logger.LogAttrs(ctx, slog.LevelError, "database connection event", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "success"))
	m.logger.LogAttrs(ctx, slog.LevelDebug, "database connection event", attrs...)
}

// logTransaction logs transaction control events.
func (m *Manager) logTransaction(ctx context.Context, event string, duration time.Duration, err error) {
	if m == nil || !m.loggingEnabled || m.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("event", event),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		m.logger.LogAttrs(ctx, slog.LevelError, "database transaction event", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "success"))
	m.logger.LogAttrs(ctx, slog.LevelDebug, "database transaction event", attrs...)
}
