package glog

import (
	"go.uber.org/zap/zapcore"
)

// Config is the user-facing configuration for the package-level logger.
type Config struct {
	// Path is the log file path passed to the rotating file sink.
	Path string `json:"path" yaml:"path"`
	// Level is one of debug, info, warn, error, dpanic, panic, fatal.
	Level string `json:"level" yaml:"level"`
	// PrintConsole mirrors output to stdout in addition to the file sink.
	PrintConsole bool `json:"printConsole" yaml:"printConsole"`
	// File configures rotation of the on-disk log file.
	File FileConfig `json:"file" yaml:"file"`
}

// FileConfig mirrors lumberjack.Logger's rotation knobs.
type FileConfig struct {
	// MaxSize is the size in megabytes a log file may reach before rotation.
	MaxSize int `json:"maxSize" yaml:"maxSize"`
	// MaxBackups caps the number of rotated files retained; oldest is deleted.
	MaxBackups int `json:"maxBackups" yaml:"maxBackups"`
	// MaxAge is the number of days to retain rotated files.
	MaxAge int `json:"maxAge" yaml:"maxAge"`
	// Compress gzips rotated files.
	Compress bool `json:"compress" yaml:"compress"`
	// LocalTime timestamps rotated filenames using local time instead of UTC.
	LocalTime bool `json:"localTime" yaml:"localTime"`
}

// DefaultConfig returns the configuration used before Init is ever called
// and as the base a loaded config is merged onto.
func DefaultConfig() *Config {
	return &Config{
		Path:         "./logs/app.log",
		Level:        "info",
		PrintConsole: true,
		File: FileConfig{
			MaxSize:    500,
			MaxBackups: 100,
			MaxAge:     30,
			Compress:   false,
			LocalTime:  true,
		},
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// options translates cfg into the Option list Init applies. This is the
// single place configuration meets the functional-option surface: Init
// never duplicates InitWithOptions's construction logic, it just resolves a
// Config down to Options.
func (c *Config) options() []Option {
	return []Option{
		WithLevel(parseLevel(c.Level)),
		WithConsole(c.PrintConsole),
		WithWriter(newWriter(c.Path, c.File)),
	}
}

// InitFromConfig initializes the package logger from cfg. It never fails on
// a well-formed Config; the error return exists so callers composing it into
// a component Start method don't need a special case.
func InitFromConfig(cfg *Config) error {
	Init(cfg)
	return nil
}
