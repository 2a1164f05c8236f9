package logger

import (
	"os"

	"github.com/petfriends-qa/petfriends-api-tests/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Logger is the logging surface other packages accept.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Init initializes a zap SugaredLogger using settings from config. Every entry
// carries the app name and environment.
func Init(cfg *config.Config, opts ...zap.Option) (*zap.SugaredLogger, error) {
	sugar := New(cfg.LogLevel, opts...).With("app", cfg.AppName, "env", cfg.Env)
	S = sugar
	return sugar, nil
}

// New builds a JSON zap logger writing to stderr at the given level; stdout
// is reserved for command output.
func New(levelName string, opts ...zap.Option) *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		parseLevel(levelName),
	)

	opts = append([]zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}, opts...)
	return zap.New(core, opts...).Sugar()
}

func parseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes the package logger and drops it. Safe to call without Init.
func Close() error {
	if S == nil {
		return nil
	}
	err := S.Sync()
	S = nil
	return err
}

// ZapLogger adapts a sugared logger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// FromSugar wraps s; a nil s yields a logger that drops everything.
func FromSugar(s *zap.SugaredLogger) Logger {
	if s == nil {
		return NopLogger{}
	}
	return &ZapLogger{s: s}
}

func (z *ZapLogger) InfoObj(msg, key string, obj interface{}) {
	z.s.Desugar().Info(msg, zap.Any(key, obj))
}

func (z *ZapLogger) DebugObj(msg, key string, obj interface{}) {
	z.s.Desugar().Debug(msg, zap.Any(key, obj))
}

func (z *ZapLogger) WarnObj(msg, key string, obj interface{}) {
	z.s.Desugar().Warn(msg, zap.Any(key, obj))
}

func (z *ZapLogger) ErrorObj(msg, key string, obj interface{}) {
	z.s.Desugar().Error(msg, zap.Any(key, obj))
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}
