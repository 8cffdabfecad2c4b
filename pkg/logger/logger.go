package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var once sync.Once

var logger *zap.SugaredLogger

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("JSON_LOG") != "")
	})

	return logger
}

// New builds a logger writing to out. An unparsable level falls back to INFO.
// Console output is only colored when out is a terminal.
func New(out *os.File, level string, json bool) *zap.SugaredLogger {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
		} else {
			logLevel.SetLevel(parsed)
		}
	}

	var encoder zapcore.Encoder
	if json {
		productionCfg := zap.NewProductionEncoderConfig()
		productionCfg.TimeKey = "timestamp"
		productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(productionCfg)
	} else {
		developmentCfg := zap.NewDevelopmentEncoderConfig()
		developmentCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if isatty.IsTerminal(out.Fd()) {
			developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(developmentCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), logLevel)
	return zap.New(core).Sugar().With(buildFields()...)
}

func buildFields() []any {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	fields := []any{zap.String("go_version", buildInfo.GoVersion)}
	for _, v := range buildInfo.Settings {
		if v.Key == "vcs.revision" && len(v.Value) >= 7 {
			fields = append(fields, zap.String("git_revision", v.Value[0:7]))
			break
		}
	}
	return fields
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		return l.With(with...)
	}

	return Get().With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
