package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// slowQuery marks offer scans worth a warning.
const slowQuery = 200 * time.Millisecond

// GormLogger routes GORM output to a zap logger, enriched with the request context.
// Bound parameters are never logged.
type GormLogger struct {
	base  *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(base *zap.Logger) *GormLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &GormLogger{base: base.Named("db"), level: gormlogger.Warn, slow: slowQuery}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, enabledAt gormlogger.LogLevel, level zapcore.Level, format string, args []interface{}) {
	if l.level < enabledAt {
		return
	}
	if ce := WithContext(ctx, l.base).Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Trace logs failed statements at error, slow ones at warn and everything else at debug when
// the level is Info. A missing row is not a failure for a source scan.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var level zapcore.Level
	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		level = zapcore.ErrorLevel
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		level = zapcore.WarnLevel
	case l.level >= gormlogger.Info:
		level = zapcore.DebugLevel
	default:
		return
	}

	ce := WithContext(ctx, l.base).Check(level, "query")
	if ce == nil {
		return
	}
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

var _ gormlogger.Interface = (*GormLogger)(nil)
