package grid

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrOutOfBounds       = errors.New("cell out of bounds")
	ErrInvalidKey        = errors.New("invalid cell key")
)
