package cropicon

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoBounds is returned by Crop when the image is a single solid color,
// meaning there is no content to crop to.
var ErrNoBounds = errors.New("could not find bounds to crop")

// DecodeError is returned when the source image is missing, unreadable or not a decodable image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode the source image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when the cropped image cannot be encoded,
// including the case when the destination format does not support transparency.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("unable to encode the destination image %q: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// WriteError is returned when the destination cannot be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("unable to write the destination image %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
