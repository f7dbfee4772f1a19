package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/folio/project"
	"github.com/etnz/folio/store"
)

// OpenResult is a project read from a file content.
type OpenResult struct {
	Project *project.Project
	Format  Format
	// HeavyLoadDeferred is true when price histories and FX rates were not read yet, see
	// store.Store.HydrateHeavyData.
	HeavyLoadDeferred bool
	// Store is the open database of a SQLite file, nil for JSON. The caller must close it.
	Store *store.Store
}

// Open decodes the content of a project file. fileName is used to pick the format and in error
// messages.
//
// SQLite files are read lazily: the heavy data stays in the returned Store until hydrated.
func Open(data []byte, fileName string, opts ...store.Option) (*OpenResult, error) {
	if DetectFormat(data, fileName) == FormatSQLite {
		st, err := store.Open(data, opts...)
		if err != nil {
			return nil, fmt.Errorf("load error: cannot open %q: %w", fileName, err)
		}
		doc, err := st.ReadProjectBase(true)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load error: cannot read %q: %w", fileName, err)
		}
		return &OpenResult{
			Project:           doc,
			Format:            FormatSQLite,
			HeavyLoadDeferred: st.HasLazyPayload(),
			Store:             st,
		}, nil
	}

	var doc project.Project
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse error %q: %w", fileName, err)
	}
	project.Normalize(&doc)
	return &OpenResult{Project: &doc, Format: FormatJSON}, nil
}

// SaveResult is the encoded content of a project file.
type SaveResult struct {
	Data []byte
	// Store is the database used to encode a SQLite file: the one passed to Save, or a new one
	// the caller must close. Nil for JSON.
	Store *store.Store
}

// Save encodes doc in the format given by the extension of fileName, JSON when unknown.
//
// SQLite files are written through st, so that sections not loaded in doc are preserved.
// When st is nil a new store is created.
func Save(fileName string, doc *project.Project, st *store.Store, opts ...store.Option) (*SaveResult, error) {
	return encode(formatFor(fileName), fileName, doc, st, opts)
}

func encode(format Format, fileName string, doc *project.Project, st *store.Store, opts []store.Option) (*SaveResult, error) {
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := EncodeProject(&buf, doc); err != nil {
			return nil, fmt.Errorf("persist error: cannot encode %q: %w", fileName, err)
		}
		return &SaveResult{Data: buf.Bytes()}, nil
	}

	created := st == nil
	if created {
		var err error
		if st, err = store.New(opts...); err != nil {
			return nil, fmt.Errorf("persist error: %w", err)
		}
	}
	data, err := st.SaveProject(doc)
	if err != nil {
		if created {
			st.Close()
		}
		return nil, fmt.Errorf("persist error: cannot encode %q: %w", fileName, err)
	}
	return &SaveResult{Data: data, Store: st}, nil
}

// EncodeProject writes the canonical JSON form of doc, indented with two spaces.
func EncodeProject(w io.Writer, doc *project.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(project.Canonical(doc))
}
