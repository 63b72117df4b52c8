package glog

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option customizes a logger built by InitWithOptions. Config.options()
// is the bridge from on-disk configuration to this surface: Init always
// goes through it, so a Config field and a matching Option can never drift
// independently of each other.
type Option func(*Options)

// Options is the fully-resolved set of knobs InitWithOptions builds a
// logger from.
type Options struct {
	level        zapcore.Level
	printConsole bool
	writer       io.Writer
	zapOptions   []zap.Option
}

// WithLevel sets the minimum level logged by both cores.
func WithLevel(level zapcore.Level) Option {
	return func(o *Options) { o.level = level }
}

// WithConsole toggles the stdout console core alongside the file core.
func WithConsole(enabled bool) Option {
	return func(o *Options) { o.printConsole = enabled }
}

// WithWriter overrides the file core's sink. Used by Config.options() to
// install the lumberjack-backed rotating writer; a caller driving
// InitWithOptions directly (e.g. a test capturing output into a buffer) can
// substitute any io.Writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.writer = w }
}

// WithZapOptions appends extra zap.Options (e.g. sampling, a DPanic hook)
// onto the fixed set InitWithOptions always applies.
func WithZapOptions(zapOpts ...zap.Option) Option {
	return func(o *Options) { o.zapOptions = append(o.zapOptions, zapOpts...) }
}

func buildOptions(opts ...Option) *Options {
	o := &Options{
		level:        zapcore.InfoLevel,
		printConsole: true,
		writer:       defaultWriter("./logs/app.log"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
