package folio

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format is the physical encoding of a project file.
type Format string

const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// sqliteMagic is the header of every SQLite database file.
const sqliteMagic = "SQLite format 3\x00"

var extensions = map[string]Format{
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
	".db":      FormatSQLite,
	".json":    FormatJSON,
	".parqet":  FormatJSON,
}

// FormatOf returns the format associated with the extension of fileName, and false if the
// extension is unknown.
func FormatOf(fileName string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(fileName))]
	return f, ok
}

// DetectFormat returns the format of a project file content. The file extension wins, the
// content header decides for unknown extensions.
func DetectFormat(data []byte, fileName string) Format {
	if f, ok := FormatOf(fileName); ok {
		return f
	}
	if bytes.HasPrefix(data, []byte(sqliteMagic)) {
		return FormatSQLite
	}
	return FormatJSON
}

// formatFor returns the format used to write fileName.
func formatFor(fileName string) Format {
	if f, ok := FormatOf(fileName); ok {
		return f
	}
	return FormatJSON
}
