package workout

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jedarden/liftlog/internal/logger"
)

const (
	// Database configuration; one process reads and writes at a time
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 0
	connMaxIdleTime = 0

	// Retry configuration for database locks. Kept short so a second
	// liftlog instance never stalls startup for long.
	maxRetries     = 3
	baseRetryDelay = 50 * time.Millisecond
	maxRetryDelay  = 200 * time.Millisecond

	dbOperationTimeout = 5 * time.Second
)

const (
	cacheDirName  = "liftlog"
	cacheDBName   = "sets.db"
	schemaVersion = 2
)

// SetCache persists parsed workout sets in SQLite, keyed by source file,
// so unchanged exports are not re-parsed on every launch. The database is
// plain SQLite and can be queried by external tools.
//
// A SetCache whose database failed to open is still usable: every lookup
// misses and every store is a no-op.
type SetCache struct {
	dbPath string
	db     *sql.DB
	mu     sync.RWMutex
}

// FileState describes the source file a cached parse was taken from
type FileState struct {
	SourceFile   string
	Size         int64
	LastModified time.Time
	RowCount     int64
}

// withRetry executes a database operation with exponential backoff retry on lock errors
func withRetry[T any](ctx context.Context, operation func() (T, error)) (T, error) {
	var result T
	var lastErr error
	delay := baseRetryDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result, lastErr = operation()
		if lastErr == nil {
			return result, nil
		}

		if !isLockError(lastErr) {
			return result, lastErr
		}

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}
	}

	return result, fmt.Errorf("database operation failed after %d retries: %w", maxRetries, lastErr)
}

// withRetryNoResult executes a database operation that returns only an error
func withRetryNoResult(ctx context.Context, operation func() error) error {
	_, err := withRetry(ctx, func() (struct{}, error) {
		return struct{}{}, operation()
	})
	return err
}

// isLockError reports whether err is a transient SQLite lock error
func isLockError(err error) bool {
	msg := err.Error()
	for _, phrase := range []string{
		"database is locked",
		"SQLITE_BUSY",
		"SQLITE_LOCKED",
		"database table is locked",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// DefaultCacheDir returns the per-user cache directory for liftlog
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, cacheDirName)
}

// NewSetCache opens (creating if needed) the cache database in dir.
// An error is returned alongside a usable no-op cache when the database
// cannot be opened.
func NewSetCache(dir string) (*SetCache, error) {
	sc := &SetCache{dbPath: filepath.Join(dir, cacheDBName)}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return sc, fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := sc.initDB(); err != nil {
		return sc, fmt.Errorf("failed to open cache database: %w", err)
	}

	return sc, nil
}

// initDB opens the SQLite database and applies the schema
func (sc *SetCache) initDB() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// _journal_mode=WAL: readers never block the single writer
	// _busy_timeout: wait for a competing instance instead of failing
	// _txlock=immediate: take the write lock at BEGIN to avoid deadlocks
	connStr := sc.dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000&_txlock=immediate"
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	// The connection string parameter is not honoured by every driver build;
	// SQLite falls back to the rollback journal when WAL is unavailable.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=10000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			logger.Debug("Cache pragma %q failed: %v", pragma, err)
		}
	}

	if err := migrateSchema(db); err != nil {
		db.Close()
		return err
	}

	sc.db = db
	return nil
}

const cacheSchema = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_file TEXT NOT NULL,
		row_number INTEGER NOT NULL,
		started_unix INTEGER NOT NULL,
		started_offset INTEGER NOT NULL,
		exercise TEXT NOT NULL,
		weight REAL,
		reps REAL,
		duration REAL,
		distance REAL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_source_row ON workout_sets(source_file, row_number);
	CREATE INDEX IF NOT EXISTS idx_exercise ON workout_sets(exercise);

	CREATE TABLE IF NOT EXISTS file_state (
		source_file TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		last_modified INTEGER NOT NULL,
		row_count INTEGER NOT NULL
	);
	`

// migrateSchema creates the cache tables. A database written by another
// schema version only holds derived data, so its tables are dropped and
// rebuilt rather than migrated.
func migrateSchema(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return err
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return err
	case version != schemaVersion:
		logger.Info("Rebuilding parse cache (schema version %d, want %d)", version, schemaVersion)
		for _, stmt := range []string{
			"DROP TABLE IF EXISTS workout_sets",
			"DROP TABLE IF EXISTS file_state",
			"DELETE FROM schema_version",
		} {
			if _, err := db.Exec(stmt); err != nil {
				return err
			}
		}
	default:
		_, err = db.Exec(cacheSchema)
		return err
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

// Close closes the database connection
func (sc *SetCache) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.db != nil {
		err := sc.db.Close()
		sc.db = nil
		return err
	}
	return nil
}

// Enabled reports whether the cache has an open database
func (sc *SetCache) Enabled() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.db != nil
}

// Path returns the path to the SQLite database file
func (sc *SetCache) Path() string {
	return sc.dbPath
}

// fileState reads the recorded state for sourceFile
func (sc *SetCache) fileState(ctx context.Context, sourceFile string) (FileState, bool) {
	st, err := withRetry(ctx, func() (FileState, error) {
		var size, mod, rows int64
		err := sc.db.QueryRowContext(ctx,
			"SELECT size, last_modified, row_count FROM file_state WHERE source_file = ?",
			sourceFile).Scan(&size, &mod, &rows)
		if err != nil {
			return FileState{}, err
		}
		return FileState{
			SourceFile:   sourceFile,
			Size:         size,
			LastModified: time.Unix(0, mod),
			RowCount:     rows,
		}, nil
	})
	if err != nil {
		return FileState{}, false
	}
	return st, true
}

// Lookup returns the cached sets for sourceFile when the recorded size and
// modification time still match the file on disk.
func (sc *SetCache) Lookup(ctx context.Context, sourceFile string, size int64, modTime time.Time) ([]Set, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	if sc.db == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	st, ok := sc.fileState(ctx, sourceFile)
	if !ok || st.Size != size || st.LastModified.UnixNano() != modTime.UnixNano() {
		return nil, false
	}

	sets, err := withRetry(ctx, func() ([]Set, error) {
		rows, err := sc.db.QueryContext(ctx, `
			SELECT row_number, started_unix, started_offset, exercise, weight, reps, duration, distance
			FROM workout_sets
			WHERE source_file = ?
			ORDER BY row_number
		`, sourceFile)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []Set
		for rows.Next() {
			var (
				set                              Set
				started                          int64
				offset                           int
				weight, reps, duration, distance sql.NullFloat64
			)
			if err := rows.Scan(&set.Row, &started, &offset, &set.Exercise, &weight, &reps, &duration, &distance); err != nil {
				return nil, err
			}
			set.Start = restoreZone(time.Unix(0, started), offset)
			for m, v := range map[Metric]sql.NullFloat64{
				MetricWeight:   weight,
				MetricReps:     reps,
				MetricDuration: duration,
				MetricDistance: distance,
			} {
				if v.Valid {
					set.SetValue(m, v.Float64)
				}
			}
			out = append(out, set)
		}
		return out, rows.Err()
	})
	if err != nil || int64(len(sets)) != st.RowCount {
		return nil, false
	}

	return sets, true
}

// Store replaces the cached sets for sourceFile in a single transaction
func (sc *SetCache) Store(ctx context.Context, sourceFile string, size int64, modTime time.Time, sets []Set) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.db == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	return withRetryNoResult(ctx, func() error {
		tx, err := sc.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, "DELETE FROM workout_sets WHERE source_file = ?", sourceFile); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO workout_sets
			(source_file, row_number, started_unix, started_offset, exercise, weight, reps, duration, distance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, s := range sets {
			_, offset := s.Start.Zone()
			_, err = stmt.ExecContext(ctx, sourceFile, s.Row, s.Start.UnixNano(), offset, s.Exercise,
				nullable(s, MetricWeight), nullable(s, MetricReps),
				nullable(s, MetricDuration), nullable(s, MetricDistance))
			if err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO file_state (source_file, size, last_modified, row_count)
			VALUES (?, ?, ?, ?)
		`, sourceFile, size, modTime.UnixNano(), len(sets))
		if err != nil {
			return err
		}

		return tx.Commit()
	})
}

// restoreZone puts t back in the zone it was parsed with. Times that were
// local when stored stay in time.Local; any other offset becomes a fixed
// zone so calendar days fall where they did in the source file.
func restoreZone(t time.Time, offset int) time.Time {
	if _, local := t.Zone(); local == offset {
		return t
	}
	return t.In(time.FixedZone("", offset))
}

func nullable(s Set, m Metric) sql.NullFloat64 {
	v, ok := s.Value(m)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

// Invalidate removes all cached data for a file
func (sc *SetCache) Invalidate(ctx context.Context, sourceFile string) error {
	return sc.exec(ctx,
		[]string{"DELETE FROM workout_sets WHERE source_file = ?", "DELETE FROM file_state WHERE source_file = ?"},
		sourceFile)
}

// Clear removes all cached data
func (sc *SetCache) Clear(ctx context.Context) error {
	return sc.exec(ctx, []string{"DELETE FROM workout_sets", "DELETE FROM file_state"})
}

// exec runs statements in one transaction with the same arguments
func (sc *SetCache) exec(ctx context.Context, statements []string, args ...any) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.db == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	return withRetryNoResult(ctx, func() error {
		tx, err := sc.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// CacheStats summarises the cache contents
type CacheStats struct {
	SetCount    int64
	FileCount   int64
	DBSizeBytes int64
}

// Stats returns cache statistics. A disabled cache reports zero counts.
func (sc *SetCache) Stats(ctx context.Context) (CacheStats, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	var st CacheStats
	if sc.db == nil {
		return st, nil
	}

	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	err := withRetryNoResult(ctx, func() error {
		if err := sc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workout_sets").Scan(&st.SetCount); err != nil {
			return err
		}
		return sc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM file_state").Scan(&st.FileCount)
	})
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}

	if info, err := os.Stat(sc.dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	return st, nil
}
