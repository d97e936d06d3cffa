package render

import "errors"

var (
	// ErrInvalidRegion flags a degenerate photo-area selection (zero width
	// or height, or a non-positive preview scale).
	ErrInvalidRegion = errors.New("render: invalid photo region selection")

	// ErrMissingTemplate flags a generation attempt before both template
	// sides are configured.
	ErrMissingTemplate = errors.New("render: template sides not configured")
)

// CompositionError wraps any failure during rasterization, text drawing,
// photo placement or output encoding. When it is returned, no output file
// has been produced.
type CompositionError struct {
	Op  string
	Err error
}

func (e *CompositionError) Error() string {
	return "render: " + e.Op + ": " + e.Err.Error()
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
