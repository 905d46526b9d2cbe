// Package logging hands out category-named zap loggers so each pipeline
// stage (acquisition, cache, conversion, ...) writes identifiable entries.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies a pipeline stage in log output.
type Category string

const (
	CategoryAcquisition Category = "acquisition" // raw data download
	CategoryCache       Category = "cache"       // event dataset store
	CategoryConvert     Category = "convert"     // domain conversion
	CategorySkyPos      Category = "skypos"      // sky position correction
	CategoryPipeline    Category = "pipeline"    // end-to-end orchestration
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init installs the process-wide root logger. Called once at startup;
// before that every category logger is a no-op.
func Init(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	SetRoot(logger)
	return logger, nil
}

// SetRoot replaces the root logger. Tests use this to capture output.
func SetRoot(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	root = logger
}

// Get returns the logger for a category.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}
