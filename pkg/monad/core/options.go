package core

import (
	"context"
	"log/slog"
)

type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
	LoggerOptionKey OptionKey = "logger_options"
	PoolOptionKey   OptionKey = "pool_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type LoggerOptions struct {
	Logger *slog.Logger
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerOptionKey, LoggerOptions{Logger: logger})
}

// GetLogger returns the logger stored in ctx, or slog.Default
func GetLogger(ctx context.Context) *slog.Logger {
	options, ok := ctx.Value(LoggerOptionKey).(LoggerOptions)
	if ok && options.Logger != nil {
		return options.Logger
	}
	return slog.Default()
}

// WithPool makes futures created with the returned context run on p
func WithPool(ctx context.Context, p *Pool) context.Context {
	return context.WithValue(ctx, PoolOptionKey, p)
}

// PoolFrom returns the pool stored in ctx, or the shared Default pool
func PoolFrom(ctx context.Context) *Pool {
	if p, ok := ctx.Value(PoolOptionKey).(*Pool); ok && p != nil {
		return p
	}
	return Default()
}
