package signature

import (
	"errors"
	"fmt"
)

// Signature is the stored metadata of one registered original.
type Signature struct {
	ID        string `json:"id" yaml:"id"`
	Path      string `json:"path" yaml:"path"`
	ByteSize  int64  `json:"byte_size" yaml:"byte_size"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	ColorMode string `json:"color_mode" yaml:"color_mode"`
	Format    string `json:"format" yaml:"format"`
}

// Area returns the pixel area of the original.
func (s Signature) Area() int {
	return s.Width * s.Height
}

// DecodeError reports an original that could not be decoded during
// registration.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode original %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrDuplicateID is returned when two signatures share an ID.
var ErrDuplicateID = errors.New("duplicate signature id")
