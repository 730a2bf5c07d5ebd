package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(prev)
	return logs
}

func traceQuery(l logger.Interface, begin time.Time, err error) {
	l.Trace(context.Background(), begin, func() (string, int64) {
		return "SELECT * FROM campaigns", 3
	}, err)
}

func TestQueryLoggerFailedQuery(t *testing.T) {
	logs := captureLogs(t)
	l := newQueryLogger(logger.Warn, false)

	traceQuery(l, time.Now(), errors.New("constraint violated"))

	entries := logs.FilterMessage("query failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	// Statement bodies stay out of the log unless verbose is on.
	require.NotContains(t, entries[0].ContextMap(), "sql")
}

func TestQueryLoggerIgnoresRecordNotFound(t *testing.T) {
	logs := captureLogs(t)
	l := newQueryLogger(logger.Warn, false)

	traceQuery(l, time.Now(), logger.ErrRecordNotFound)

	require.Empty(t, logs.FilterMessage("query failed").All())
}

func TestQueryLoggerSlowQuery(t *testing.T) {
	logs := captureLogs(t)
	l := newQueryLogger(logger.Warn, true)

	traceQuery(l, time.Now().Add(-time.Second), nil)

	entries := logs.FilterMessage("slow query").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Contains(t, entries[0].ContextMap(), "sql")
}

func TestQueryLoggerVerboseInfo(t *testing.T) {
	logs := captureLogs(t)

	traceQuery(newQueryLogger(logger.Info, true), time.Now(), nil)
	require.Len(t, logs.FilterMessage("query").All(), 1)

	// Non-verbose info level stays quiet for successful queries.
	traceQuery(newQueryLogger(logger.Info, false), time.Now(), nil)
	require.Len(t, logs.FilterMessage("query").All(), 1)
}

func TestQueryLoggerSilent(t *testing.T) {
	logs := captureLogs(t)
	l := newQueryLogger(logger.Silent, true)

	traceQuery(l, time.Now().Add(-time.Second), errors.New("boom"))

	require.Zero(t, logs.Len())
}

func TestQueryLoggerLogMode(t *testing.T) {
	logs := captureLogs(t)
	l := newQueryLogger(logger.Silent, true).LogMode(logger.Info)

	traceQuery(l, time.Now(), nil)

	require.Len(t, logs.FilterMessage("query").All(), 1)
}
