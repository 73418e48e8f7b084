// Package sheet defines the contract between the synchronization
// pipelines and the spreadsheet backends. Two backends implement it:
// a local .xlsx workbook and a Google Sheets document looked up by
// name.
package sheet

import (
	"context"
	"errors"

	"github.com/pblondin/stringify/grid"
)

// ErrDocumentNotFound reports that no spreadsheet with the requested
// name exists on the backend.
var ErrDocumentNotFound = errors.New("spreadsheet document not found")

// Reader fetches the full cell grid of a named document.
type Reader interface {
	ReadGrid(ctx context.Context, name string) (grid.Grid, error)
}

// Writer replaces the full cell grid of a named document, creating the
// document when it does not exist yet.
type Writer interface {
	WriteGrid(ctx context.Context, name string, g grid.Grid) error
}

// ReadWriter groups both directions, which every backend supports.
type ReadWriter interface {
	Reader
	Writer
}
