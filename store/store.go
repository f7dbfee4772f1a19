// Package store persists a project in a single file SQLite database.
//
// The database holds two tables: project_meta, a key/value table of scalar fields, and
// project_sections, one JSON payload per section of the document. Price histories and FX rates
// are heavy sections: a Store can read a project without them and load them later with
// HydrateHeavyData. Saving a project only writes the sections that changed since they were
// last read or written, and never overwrites heavy sections that were not loaded.
//
// A Store is not safe for concurrent use.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/etnz/folio/internal/logger"
	"github.com/etnz/folio/project"
)

// Store is an open project database.
type Store struct {
	db   *gorm.DB
	path string // database file in the engine scratch directory.
	log  *zap.SugaredLogger

	// snapshot holds the last payload read or written for each section.
	snapshot map[Section]string
	lazy     bool // heavy sections hold data.
	hydrated bool // heavy sections have been read, it is safe to overwrite them.
	closed   bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger of the store. It defaults to the process logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) { s.log = log }
}

// New returns an empty store.
func New(opts ...Option) (*Store, error) { return open(nil, opts) }

// Open returns a store loaded from the content of a database file. An empty content is a new
// store.
//
// Opening checks the schema version: it fails with a *VersionMismatchError for a database of
// another version, ErrLegacyFormat for a database in the legacy layout, and ErrCorrupt for
// anything that is not a project database.
func Open(data []byte, opts ...Option) (*Store, error) { return open(data, opts) }

func open(data []byte, opts []Option) (*Store, error) {
	eng, err := acquireEngine()
	if err != nil {
		return nil, err
	}

	s := &Store{path: eng.newPath(), log: logger.Get()}
	for _, opt := range opts {
		opt(s)
	}
	fresh := len(data) == 0
	if !fresh {
		if err := os.WriteFile(s.path, data, 0o600); err != nil {
			return nil, fmt.Errorf("open error: cannot materialise database: %w", err)
		}
	}

	s.db, err = openDB(s.path)
	if err != nil {
		s.remove()
		if !fresh {
			return nil, Wrap(ErrCorrupt, err)
		}
		return nil, fmt.Errorf("open error: %w", err)
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := s.init(fresh); err != nil {
		s.Close()
		return nil, err
	}
	s.log.Debugw("store opened", "fresh", fresh, "lazy", s.lazy)
	return s, nil
}

// init creates the schema, checks the version and takes the initial snapshot.
func (s *Store) init(fresh bool) error {
	for _, stmt := range ddl {
		if err := s.db.Exec(stmt).Error; err != nil {
			if fresh {
				return fmt.Errorf("open error: cannot create schema: %w", err)
			}
			return Wrap(ErrCorrupt, err)
		}
	}

	if fresh {
		if err := setMeta(s.db, keySchemaVersion, SchemaVersion); err != nil {
			return fmt.Errorf("open error: %w", err)
		}
	} else if err := s.assertVersion(); err != nil {
		return err
	}

	lazy, err := s.detectHeavyPayload()
	if err != nil {
		return Wrap(ErrCorrupt, err)
	}
	s.lazy, s.hydrated = lazy, !lazy

	s.snapshot, err = s.readSections(Sections...)
	if err != nil {
		return Wrap(ErrCorrupt, err)
	}
	return nil
}

// HasLazyPayload reports whether a heavy section holds data.
func (s *Store) HasLazyPayload() bool { return s.lazy }

// Hydrated reports whether the heavy sections have been read, or are empty.
func (s *Store) Hydrated() bool { return s.hydrated }

// ReadProjectBase reads the project. When lazy is true, price histories and FX rates are left
// empty, see HydrateHeavyData.
//
// Reading never hydrates the store, even when lazy is false: only HydrateHeavyData allows a
// save to overwrite heavy sections.
func (s *Store) ReadProjectBase(lazy bool) (*project.Project, error) {
	if s.closed {
		return nil, ErrClosed
	}
	meta, err := s.readMeta()
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	names := lightSections
	if !lazy {
		names = Sections
	}
	sections, err := s.readSections(names...)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	p := &project.Project{
		Version:  project.DocumentVersion,
		ID:       meta[keyID],
		Name:     meta[keyName],
		Created:  meta[keyCreated],
		Modified: meta[keyModified],
		FXData: project.FXData{
			BaseCurrency: meta[keyFXBaseCurrency],
			LastUpdated:  meta[keyFXLastUpdated],
		},
	}
	if v, err := strconv.Atoi(meta[keyVersion]); err == nil {
		p.Version = v
	}
	if raw := meta[keySettings]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Settings); err != nil {
			return nil, fmt.Errorf("read error: meta %q: %w", keySettings, err)
		}
	}

	var core map[string]project.SecurityCore
	var history map[string]project.PriceHistory
	for _, d := range []struct {
		name Section
		v    any
	}{
		{SectionPortfolios, &p.Portfolios},
		{SectionTransactions, &p.Transactions},
		{SectionCashAccounts, &p.CashAccounts},
		{SectionCashMovements, &p.CashMovements},
		{SectionSecurities, &core},
		{SectionPriceHistory, &history},
		{SectionFXRates, &p.FXData.Rates},
	} {
		if err := decode(sections, d.name, d.v); err != nil {
			return nil, err
		}
	}
	p.Securities = project.MergeSecurities(core, history)
	project.Normalize(p)
	return p, nil
}

// HydrateHeavyData returns a copy of base completed with the price histories and FX rates of
// the store. It returns base unchanged when the store has no heavy data.
func (s *Store) HydrateHeavyData(base *project.Project) (*project.Project, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !s.lazy {
		return base, nil
	}
	sections, err := s.readSections(heavySections...)
	if err != nil {
		return nil, fmt.Errorf("hydrate error: %w", err)
	}
	var history map[string]project.PriceHistory
	if err := decode(sections, SectionPriceHistory, &history); err != nil {
		return nil, err
	}
	var rates map[string]project.RateHistory
	if err := decode(sections, SectionFXRates, &rates); err != nil {
		return nil, err
	}

	doc := *base
	doc.Securities = project.MergeSecurities(project.CoreOf(base.Securities), history)
	doc.FXData.Rates = rates
	project.Normalize(&doc)

	s.hydrated = true
	s.log.Debugw("heavy data hydrated", "securities", len(history), "currencies", len(rates))
	return &doc, nil
}

// SaveProject writes doc and returns the content of the database file.
//
// All writes happen in a single transaction. Unchanged sections are not rewritten. While the
// heavy sections have not been read, the price histories are never written, and FX rates are
// only written when doc carries some.
func (s *Store) SaveProject(doc *project.Project) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	// A document and its normalized form have the same payloads.
	doc = project.Canonical(doc)
	meta, err := metaOf(doc)
	if err != nil {
		return nil, fmt.Errorf("persist error: %w", err)
	}
	payloads, err := payloadsOf(doc)
	if err != nil {
		return nil, fmt.Errorf("persist error: %w", err)
	}

	staged := make(map[Section]string)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, kv := range meta {
			if err := setMeta(tx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		for _, name := range Sections {
			payload := payloads[name]
			if s.preserveHeavy(name, payload) {
				s.log.Debugw("heavy section preserved", "section", string(name))
				continue
			}
			if prev, ok := s.snapshot[name]; ok && prev == payload {
				s.log.Debugw("section unchanged", "section", string(name))
				continue
			}
			if err := upsertSection(tx, name, payload); err != nil {
				return fmt.Errorf("section %q: %w", name, err)
			}
			staged[name] = payload
		}
		return nil
	})
	if err != nil {
		return nil, Wrap(ErrWrite, err)
	}

	// The snapshot only follows committed writes.
	for _, name := range Sections {
		if payload, ok := staged[name]; ok {
			s.snapshot[name] = payload
			s.log.Debugw("section written", "section", string(name), "bytes", len(payload))
		}
	}

	lazy, err := s.detectHeavyPayload()
	if err != nil {
		return nil, fmt.Errorf("persist error: %w", err)
	}
	s.lazy = lazy
	if !lazy {
		s.hydrated = true
	}
	return s.export()
}

// preserveHeavy reports whether the write of a heavy section must be skipped to keep data that
// was never read.
func (s *Store) preserveHeavy(name Section, payload string) bool {
	if !s.lazy || s.hydrated {
		return false
	}
	switch name {
	case SectionPriceHistory:
		return true
	case SectionFXRates:
		return isTrivial(payload)
	}
	return false
}

// export returns the content of the database as a single file.
func (s *Store) export() ([]byte, error) {
	tmp := s.path + ".export"
	_ = os.Remove(tmp)
	if err := s.db.Exec("VACUUM INTO ?", tmp).Error; err != nil {
		return nil, fmt.Errorf("export error: %w", err)
	}
	defer os.Remove(tmp)
	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("export error: %w", err)
	}
	s.log.Debugw("store exported", "bytes", len(data))
	return data, nil
}

// Export returns the content of the database file without writing anything.
func (s *Store) Export() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.export()
}

// Close releases the database. It is safe to call Close more than once.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.db != nil {
		if sqlDB, derr := s.db.DB(); derr == nil {
			err = sqlDB.Close()
		}
	}
	s.remove()
	return err
}

// remove deletes the database files from the scratch directory.
func (s *Store) remove() {
	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		if err := os.Remove(s.path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warnw("cannot remove scratch file", "path", s.path+suffix, "error", err)
		}
	}
}

// detectHeavyPayload reports whether a heavy section holds more than an empty object.
func (s *Store) detectHeavyPayload() (bool, error) {
	var n int64
	err := s.db.Model(&sectionRow{}).
		Where("name IN ? AND length(payload) > ?", sectionNames(heavySections), len(trivialPayload)).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) readMeta() (map[string]string, error) {
	var rows []metaRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	meta := make(map[string]string, len(rows))
	for _, r := range rows {
		meta[r.Key] = r.Value
	}
	return meta, nil
}

func (s *Store) readSections(names ...Section) (map[Section]string, error) {
	var rows []sectionRow
	if err := s.db.Where("name IN ?", sectionNames(names)).Find(&rows).Error; err != nil {
		return nil, err
	}
	sections := make(map[Section]string, len(rows))
	for _, r := range rows {
		sections[Section(r.Name)] = r.Payload
	}
	return sections, nil
}

// SchemaVersion returns the schema version recorded in the store.
func (s *Store) SchemaVersion() (string, error) {
	meta, err := s.readMeta()
	if err != nil {
		return "", err
	}
	return meta[keySchemaVersion], nil
}

func setMeta(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&metaRow{Key: key, Value: value}).Error
}

func upsertSection(db *gorm.DB, name Section, payload string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&sectionRow{Name: string(name), Payload: payload}).Error
}

// decode unmarshals a section into v. A missing section leaves v untouched.
func decode(sections map[Section]string, name Section, v any) error {
	raw, ok := sections[name]
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("read error: section %q: %w", name, err)
	}
	return nil
}
