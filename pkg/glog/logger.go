// Package glog is the module's structured logging sink: a package-level
// zap.Logger teed between a JSON file core (rotated through lumberjack) and
// an optional console core. It can be (re)built from a Config (InitFromConfig,
// the path internal/config's loader drives) or directly from functional
// Options (InitWithOptions, for tests and any caller that wants a knob a
// Config field doesn't expose). pkg/actor and pkg/component log through this
// package for every internally-swallowed outcome; they never write to
// stdout directly.
package glog

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerValue  atomic.Value // *zap.Logger
	sugaredValue atomic.Value // *zap.SugaredLogger
	atomicLevel  zap.AtomicLevel
)

func init() {
	InitWithOptions()
}

// Init (re)builds the package logger from cfg, via Config.options(). A nil
// cfg is a no-op, so a caller can unconditionally pass a possibly-absent
// loaded config.
func Init(cfg *Config) {
	if cfg == nil {
		return
	}
	InitWithOptions(cfg.options()...)
}

// InitWithOptions (re)builds the package logger directly from opts,
// bypassing Config entirely.
func InitWithOptions(opts ...Option) {
	o := buildOptions(opts...)
	atomicLevel = zap.NewAtomicLevelAt(o.level)

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		TimeKey:        "T",
		CallerKey:      "C",
		NameKey:        "N",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000Z0700"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := make([]zapcore.Core, 0, 2)
	cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(o.writer), atomicLevel))
	if o.printConsole {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), atomicLevel))
	}
	tee := zapcore.NewTee(cores...)

	zapOpts := append([]zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.AddCallerSkip(1),
	}, o.zapOptions...)
	logger := zap.New(tee, zapOpts...)

	loggerValue.Store(logger)
	sugaredValue.Store(logger.Sugar())
}

// Stop flushes any buffered log entries. Call once at shutdown, after the
// last component that might still log has stopped.
func Stop() {
	if l := getLogger(); l != nil {
		_ = l.Sync()
	}
	if sl := getSugaredLogger(); sl != nil {
		_ = sl.Sync()
	}
}

// SetLogLevel adjusts the active level without rebuilding the cores.
func SetLogLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

// GetLevel returns the currently active level.
func GetLevel() zapcore.Level {
	return atomicLevel.Level()
}

// WithOptions rebuilds the package logger with additional zap.Options
// applied on top of the logger already running, e.g. to install a
// DPanic-level hook after Init. Unlike InitWithOptions, this does not
// reconstruct the cores — it wraps the live *zap.Logger.
func WithOptions(opts ...zap.Option) {
	if l := getLogger(); l != nil {
		newLogger := l.WithOptions(opts...)
		loggerValue.Store(newLogger)
		sugaredValue.Store(newLogger.Sugar())
	}
}

func getLogger() *zap.Logger {
	if v := loggerValue.Load(); v != nil {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return nil
}

func getSugaredLogger() *zap.SugaredLogger {
	if v := sugaredValue.Load(); v != nil {
		if sl, ok := v.(*zap.SugaredLogger); ok {
			return sl
		}
	}
	return nil
}

func Debug(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Error(msg, fields...)
	}
}

func Panic(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Panic(msg, fields...)
	}
}

func Fatal(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Fatal(msg, fields...)
	}
}

func Debugf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Debugf(template, args...)
	}
}

func Infof(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Infof(template, args...)
	}
}

func Warnf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Warnf(template, args...)
	}
}

func Errorf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Errorf(template, args...)
	}
}

func DPanicf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.DPanicf(template, args...)
	}
}

func Panicf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Panicf(template, args...)
	}
}

func Fatalf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Fatalf(template, args...)
	}
}
