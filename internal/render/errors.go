package render

import (
	"errors"
	"fmt"
)

var ErrCanvasTooLarge = errors.New("canvas exceeds the maximum height")

// RenderError is returned when text could not be turned into an image, the
// caller is expected to deliver the text instead.
type RenderError struct {
	Lines int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render image of %d lines: %s", e.Lines, e.Err.Error())
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
