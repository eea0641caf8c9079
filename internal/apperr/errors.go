package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrMissingGlyph     = errors.New("missing glyph mapping")
	ErrUnknownReference = errors.New("unknown reference")
	ErrCyclicDefinition = errors.New("cyclic definition")
)
