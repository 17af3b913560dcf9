package util

import (
	"sync"

	"go.uber.org/zap"
)

// LogLevel values are ordered by verbosity; a message is written when its
// level is at most the configured one.
type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogVoxel LogCategory = 1 << iota
	LogRegion
	LogTraversal
	LogClipboard
	LogIO
	LogConfig
)

var categoryNames = map[LogCategory]string{
	LogVoxel:     "voxel",
	LogRegion:    "region",
	LogTraversal: "traversal",
	LogClipboard: "clipboard",
	LogIO:        "io",
	LogConfig:    "config",
}

// AllLogCategories enables every category.
const AllLogCategories = LogVoxel | LogRegion | LogTraversal | LogClipboard | LogIO | LogConfig

var (
	loggerMu      sync.RWMutex
	logger        = zap.NewNop()
	logLevel      = LogLevelInfo
	logCategories = AllLogCategories
)

// SetLogger replaces the backend used by all Log* helpers. A nil logger
// silences output again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// SetLogFilter sets the most verbose level written and the enabled
// categories.
func SetLogFilter(level LogLevel, categories LogCategory) {
	loggerMu.Lock()
	logLevel, logCategories = level, categories
	loggerMu.Unlock()
}

func LogFilter() (LogLevel, LogCategory) {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logLevel, logCategories
}

func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func ParseLogLevel(name string) (LogLevel, bool) {
	switch name {
	case "error":
		return LogLevelError, true
	case "warning", "warn":
		return LogLevelWarning, true
	case "debug":
		return LogLevelDebug, true
	case "info":
		return LogLevelInfo, true
	}
	return 0, false
}

func ParseLogCategory(name string) (LogCategory, bool) {
	for cat, catName := range categoryNames {
		if catName == name {
			return cat, true
		}
	}
	return 0, false
}

func log(cat LogCategory, lvl LogLevel, txt string, fields []zap.Field) {
	loggerMu.RLock()
	level, categories, backend := logLevel, logCategories, logger
	loggerMu.RUnlock()
	if lvl > level || categories&cat == 0 {
		return
	}
	l := backend.With(zap.String("category", categoryNames[cat]))
	switch lvl {
	case LogLevelError:
		l.Error(txt, fields...)
	case LogLevelWarning:
		l.Warn(txt, fields...)
	case LogLevelDebug:
		l.Debug(txt, fields...)
	default:
		l.Info(txt, fields...)
	}
}

func LogVoxelInfo(txt string, fields ...zap.Field) {
	log(LogVoxel, LogLevelInfo, txt, fields)
}

func LogVoxelDebug(txt string, fields ...zap.Field) {
	log(LogVoxel, LogLevelDebug, txt, fields)
}

func LogVoxelError(txt string, fields ...zap.Field) {
	log(LogVoxel, LogLevelError, txt, fields)
}

func LogRegionDebug(txt string, fields ...zap.Field) {
	log(LogRegion, LogLevelDebug, txt, fields)
}

func LogRegionWarning(txt string, fields ...zap.Field) {
	log(LogRegion, LogLevelWarning, txt, fields)
}

func LogTraversalInfo(txt string, fields ...zap.Field) {
	log(LogTraversal, LogLevelInfo, txt, fields)
}

func LogTraversalDebug(txt string, fields ...zap.Field) {
	log(LogTraversal, LogLevelDebug, txt, fields)
}

func LogTraversalWarning(txt string, fields ...zap.Field) {
	log(LogTraversal, LogLevelWarning, txt, fields)
}

func LogClipboardInfo(txt string, fields ...zap.Field) {
	log(LogClipboard, LogLevelInfo, txt, fields)
}

func LogClipboardDebug(txt string, fields ...zap.Field) {
	log(LogClipboard, LogLevelDebug, txt, fields)
}

func LogIOInfo(txt string, fields ...zap.Field) {
	log(LogIO, LogLevelInfo, txt, fields)
}

func LogIOError(txt string, fields ...zap.Field) {
	log(LogIO, LogLevelError, txt, fields)
}

func LogConfigInfo(txt string, fields ...zap.Field) {
	log(LogConfig, LogLevelInfo, txt, fields)
}
