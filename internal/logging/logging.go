// Package logging provides category-scoped loggers for phenokey, backed by
// zap. Categories map to subsystems so a curator chasing a KB load problem
// can enable kb logging alone. Before Initialize is called every category is
// a no-op, which keeps the engine itself free of logging side effects.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a log subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"      // startup, config, KB load
	CategoryKB        Category = "kb"        // KB validation and lookup
	CategorySession   Category = "session"   // session lifecycle and observations
	CategoryScoring   Category = "scoring"   // scoring and ranking
	CategoryRecommend Category = "recommend" // next-test selection
)

// Config mirrors config.LoggingConfig to avoid a circular import.
type Config struct {
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

var (
	mu         sync.RWMutex
	root       = zap.NewNop()
	enabled    map[string]bool
	perCat     = map[Category]*zap.SugaredLogger{}
	nopSugared = zap.NewNop().Sugar()
)

// Initialize builds the shared logger from cfg. Safe to call more than once;
// the last call wins.
func Initialize(cfg Config) error {
	zcfg := zap.NewProductionConfig()
	if !cfg.JSONFormat {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	level, err := zapcore.ParseLevel(levelOrInfo(cfg.Level))
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	root = logger
	enabled = cfg.Categories
	perCat = map[Category]*zap.SugaredLogger{}
	return nil
}

// SetLogger swaps in an externally constructed logger (tests use zaptest).
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	perCat = map[Category]*zap.SugaredLogger{}
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// Get returns the logger for a category, a no-op if the category is disabled.
func Get(cat Category) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if enabled != nil {
		if on, listed := enabled[string(cat)]; listed && !on {
			return nopSugared
		}
	}
	l, ok := perCat[cat]
	if !ok {
		l = root.Named(string(cat)).Sugar()
		perCat[cat] = l
	}
	return l
}

// Per-category helpers, matching call sites like logging.Scoring(...).

func Boot(format string, args ...interface{}) { Get(CategoryBoot).Infof(format, args...) }

func KB(format string, args ...interface{})      { Get(CategoryKB).Infof(format, args...) }
func KBDebug(format string, args ...interface{}) { Get(CategoryKB).Debugf(format, args...) }

func Session(format string, args ...interface{})      { Get(CategorySession).Infof(format, args...) }
func SessionDebug(format string, args ...interface{}) { Get(CategorySession).Debugf(format, args...) }

func Scoring(format string, args ...interface{})      { Get(CategoryScoring).Debugf(format, args...) }
func Recommend(format string, args ...interface{})    { Get(CategoryRecommend).Debugf(format, args...) }

func levelOrInfo(level string) string {
	if level == "" {
		return "info"
	}
	return level
}
