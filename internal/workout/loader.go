package workout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedarden/liftlog/internal/logger"
)

// ErrNoDataFile is returned when the workout file does not exist
var ErrNoDataFile = errors.New("workout file not found")

// Loader reads a workout export into a Log, going through the parse cache
// when one is configured
type Loader struct {
	Cache   *SetCache // optional
	Columns Columns
	Layouts []string
}

// NewLoader creates a Loader with the default columns and date layouts
func NewLoader(cache *SetCache) *Loader {
	return &Loader{
		Cache:   cache,
		Columns: DefaultColumns(),
		Layouts: DefaultDateLayouts,
	}
}

// CheckFile verifies that path names a readable regular file
func CheckFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoDataFile, path)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return info, nil
}

// Load parses the file at path. Cache failures are logged and never fail the load.
func (l *Loader) Load(ctx context.Context, path string) (*Log, error) {
	info, err := CheckFile(path)
	if err != nil {
		return nil, err
	}

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	started := time.Now()
	if l.Cache != nil {
		if sets, ok := l.Cache.Lookup(ctx, key, info.Size(), info.ModTime()); ok {
			logger.Info("Loaded %d sets from cache for %s in %s", len(sets), key, time.Since(started))
			return NewLog(sets), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := ParseCSV(f, l.Columns, l.Layouts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Info("Parsed %d sets from %s in %s", len(sets), key, time.Since(started))

	if l.Cache != nil {
		if err := l.Cache.Store(ctx, key, info.Size(), info.ModTime(), sets); err != nil {
			logger.Warn("Could not cache parsed sets: %v", err)
		}
	}

	return NewLog(sets), nil
}
