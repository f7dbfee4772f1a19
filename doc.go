// Package folio reads and writes portfolio project files.
//
// A project file holds a whole project.Project: portfolios, transactions, securities with
// their price history, cash accounts and FX rates. Two encodings are supported:
//   - JSON: the document, indented, in a single text file (.json, .parqet).
//   - SQLite: a single file database (.sqlite, .sqlite3, .db) managed by the store package,
//     where price histories and FX rates are read on demand and unchanged sections are not
//     rewritten.
//
// Open and Save work on file contents, OpenFile and File on files on disk. Files with an
// unknown extension are recognised by their content.
//
// This package serves as the foundational logic for the `pf` command-line tool.
package folio
