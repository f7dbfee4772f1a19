package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/etnz/folio/internal/logger"
)

// engine is the process-wide SQLite runtime: a scratch directory where stores are
// materialised and the version of the driver.
type engine struct {
	dir     string
	version string
	seq     atomic.Int64
}

// newPath returns a fresh database file path in the scratch directory.
func (e *engine) newPath() string {
	return filepath.Join(e.dir, fmt.Sprintf("store-%d.sqlite", e.seq.Add(1)))
}

var (
	engineMu   sync.Mutex
	shared     *engine
	scratchDir string // parent of the scratch directory, OS default when empty.
	inflight   singleflight.Group

	// startEngine is replaced in tests to simulate initialisation failures.
	startEngine = initEngine
)

// SetScratchDir sets the directory in which the engine creates its scratch directory.
// It has no effect once the engine is running.
func SetScratchDir(dir string) {
	engineMu.Lock()
	defer engineMu.Unlock()
	scratchDir = dir
}

// EngineVersion returns the SQLite version of the running engine, starting it if needed.
func EngineVersion() (string, error) {
	e, err := acquireEngine()
	if err != nil {
		return "", err
	}
	return e.version, nil
}

// acquireEngine returns the shared engine. The first call starts it; concurrent callers wait
// for the same initialisation. A failed initialisation is not remembered, the next call
// tries again.
func acquireEngine() (*engine, error) {
	engineMu.Lock()
	e, dir := shared, scratchDir
	engineMu.Unlock()
	if e != nil {
		return e, nil
	}

	v, err, _ := inflight.Do("engine", func() (any, error) {
		engineMu.Lock()
		defer engineMu.Unlock()
		if shared != nil {
			return shared, nil
		}
		e, err := startEngine(dir)
		if err != nil {
			return nil, err
		}
		shared = e
		logger.Get().Debugw("storage engine started", "dir", e.dir, "sqlite", e.version)
		return e, nil
	})
	if err != nil {
		return nil, Wrap(ErrEngine, err)
	}
	return v.(*engine), nil
}

// Shutdown removes the scratch directory of the engine. The next store starts a new engine.
func Shutdown() error {
	engineMu.Lock()
	defer engineMu.Unlock()
	if shared == nil {
		return nil
	}
	dir := shared.dir
	shared = nil
	return os.RemoveAll(dir)
}

func initEngine(parent string) (*engine, error) {
	dir, err := os.MkdirTemp(parent, "folio-")
	if err != nil {
		return nil, fmt.Errorf("cannot create scratch directory: %w", err)
	}
	version, err := probe()
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return &engine{dir: dir, version: version}, nil
}

// probe checks that the driver works and returns its version.
func probe() (string, error) {
	db, err := openDB(":memory:")
	if err != nil {
		return "", fmt.Errorf("cannot load sqlite driver: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "", err
	}
	defer sqlDB.Close()

	var version string
	if err := db.Raw("select sqlite_version()").Scan(&version).Error; err != nil {
		return "", fmt.Errorf("sqlite driver probe failed: %w", err)
	}
	return version, nil
}

func openDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
}
