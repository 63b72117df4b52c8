package glog

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// withDefaults fills zero rotation knobs from DefaultConfig's values rather
// than lumberjack's own (smaller) defaults, so a caller that only overrides
// Level doesn't get a surprise rotation schedule.
func (fc FileConfig) withDefaults() FileConfig {
	def := DefaultConfig().File
	if fc.MaxSize == 0 {
		fc.MaxSize = def.MaxSize
	}
	if fc.MaxBackups == 0 {
		fc.MaxBackups = def.MaxBackups
	}
	if fc.MaxAge == 0 {
		fc.MaxAge = def.MaxAge
	}
	return fc
}

// newWriter builds the rotating file sink backing the JSON core.
func newWriter(filename string, fileConfig FileConfig) io.Writer {
	fc := fileConfig.withDefaults()
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    fc.MaxSize,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAge,
		LocalTime:  fc.LocalTime,
		Compress:   fc.Compress,
	}
}

func defaultWriter(filename string) io.Writer {
	return newWriter(filename, DefaultConfig().File)
}
