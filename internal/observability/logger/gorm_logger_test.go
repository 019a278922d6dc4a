package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func query(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 3 }
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core))
	ctx := context.Background()

	l.Trace(ctx, time.Now(), query("SELECT price_offer FROM customer_offers"), nil)
	assert.Equal(t, 0, logs.Len(), "fast queries are quiet at warn level")

	l.Trace(ctx, time.Now(), query("SELECT 1"), gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	l.Trace(ctx, time.Now(), query("SELECT 1"), errors.New("boom"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "db", entry.LoggerName)
	assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])

	l.Trace(ctx, time.Now().Add(-time.Second), query("SELECT 2"), nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestGormLogger_LogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := NewGormLogger(zap.New(core))

	base.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), query("SELECT 1"), nil)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)

	base.LogMode(gormlogger.Silent).Error(context.Background(), "failed %s", "x")
	assert.Equal(t, 1, logs.Len())

	base.Error(context.Background(), "failed %s", "x")
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "failed x", logs.All()[1].Message)
}
