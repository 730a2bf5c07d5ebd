package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const slowQueryThreshold = 200 * time.Millisecond

// queryLogger adapts gorm's logger.Interface onto the global zap logger.
// Statement bodies are only emitted when verbose is on, so production logs
// never carry SQL text.
type queryLogger struct {
	level   logger.LogLevel
	verbose bool
}

func newQueryLogger(level logger.LogLevel, verbose bool) logger.Interface {
	return &queryLogger{level: level, verbose: verbose}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &queryLogger{level: level, verbose: l.verbose}
}

func (l *queryLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		zap.L().Info(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		zap.L().Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		zap.L().Error(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.String("caller", utils.FileWithLineNum()),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if l.verbose {
		fields = append(fields, zap.String("sql", sql))
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		zap.L().Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > slowQueryThreshold:
		zap.L().Warn("slow query", append(fields, zap.Duration("threshold", slowQueryThreshold))...)
	case l.level >= logger.Info && l.verbose:
		zap.L().Info("query", fields...)
	}
}
