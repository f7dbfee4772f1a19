package store

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// SectionStat describes a stored section.
type SectionStat struct {
	Name   Section
	Bytes  int
	Digest string // first 16 bytes of the BLAKE3 hash of the payload, in hex.
	Heavy  bool
	Loaded bool // the payload is part of the documents read from this store.
}

// Sections returns the stats of the sections present in the store, in write order.
func (s *Store) Sections() ([]SectionStat, error) {
	if s.closed {
		return nil, ErrClosed
	}
	sections, err := s.readSections(Sections...)
	if err != nil {
		return nil, err
	}
	var stats []SectionStat
	for _, name := range Sections {
		payload, ok := sections[name]
		if !ok {
			continue
		}
		stats = append(stats, SectionStat{
			Name:   name,
			Bytes:  len(payload),
			Digest: Digest(payload),
			Heavy:  name.IsHeavy(),
			Loaded: !name.IsHeavy() || s.hydrated,
		})
	}
	return stats, nil
}

// Digest returns the short content hash of a payload.
func Digest(payload string) string {
	sum := blake3.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:16])
}
