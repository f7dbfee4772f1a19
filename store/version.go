package store

import "fmt"

// assertVersion checks that an existing database can be read by this version.
//
// A database with a schema version must match SchemaVersion. A database without one is either
// an unfinished new store (no meta) or a store whose version entry was lost (sections present):
// both are healed by writing the current version. Otherwise the database has meta entries and
// no sections, which is the legacy layout when its tables are present and a corruption if not.
func (s *Store) assertVersion() error {
	meta, err := s.readMeta()
	if err != nil {
		return Wrap(ErrCorrupt, err)
	}
	if found, ok := meta[keySchemaVersion]; ok {
		if found != SchemaVersion {
			return &VersionMismatchError{Found: found, Expected: SchemaVersion}
		}
		return nil
	}

	var sections int64
	if err := s.db.Model(&sectionRow{}).Count(&sections).Error; err != nil {
		return Wrap(ErrCorrupt, err)
	}
	if len(meta) == 0 || sections > 0 {
		if err := setMeta(s.db, keySchemaVersion, SchemaVersion); err != nil {
			return Wrap(ErrCorrupt, err)
		}
		s.log.Debugw("schema version healed", "meta", len(meta), "sections", sections)
		return nil
	}

	for _, table := range legacyTables {
		if s.db.Migrator().HasTable(table) {
			return WithMessage(ErrLegacyFormat, fmt.Sprintf("%s (found table %q)", ErrLegacyFormat.Message, table))
		}
	}
	return ErrCorrupt
}
