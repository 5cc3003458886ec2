package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/redact"
)

// GormLogger forwards gorm's log output to the slog logger carried by the
// request context. Statements are logged at DEBUG, slow statements at WARN
// and failures at ERROR.
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger returns a logger that reports statements slower than
// slowThreshold.
func NewGormLogger(slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: gormlogger.Warn, slowThreshold: slowThreshold}
}

// LogMode implements gormlogger.Interface.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.FromContextOrDefault(ctx).InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Warn implements gormlogger.Interface.
func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.FromContextOrDefault(ctx).WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Error implements gormlogger.Interface.
func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.FromContextOrDefault(ctx).ErrorContext(ctx, redact.String(fmt.Sprintf(msg, args...)))
	}
}

// Trace implements gormlogger.Interface.
func (l *GormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := logger.FromContextOrDefault(ctx)
	sql, rows := fc()
	attrs := []any{
		slog.Int64("duration_ms", elapsed.Milliseconds()),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		log.ErrorContext(ctx, "database query failed",
			append(attrs,
				slog.String("error", redact.Error(err)),
				slog.String("error_type", fmt.Sprintf("%T", err)))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		log.WarnContext(ctx, "slow database query",
			append(attrs, slog.String("sql", redact.String(sql)))...)
	case l.level >= gormlogger.Info:
		log.DebugContext(ctx, "database query", append(attrs, slog.String("sql", sql))...)
	}
}
