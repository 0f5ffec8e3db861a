// internal/source/source.go

// Package source feeds the pipeline with raw structures. Parsing is owned by
// the TuftsBCB structure reader; this package only converts its entries into
// the core's parser-independent form.
package source

import "strucfeat-core/model"

// Source is one structure to featurize.
type Source interface {
	// ID identifies the structure in output records and diagnostics.
	ID() string
	// Load reads and converts the structure. Errors are per-structure:
	// the batch skips and continues.
	Load() (model.RawStructure, error)
}
