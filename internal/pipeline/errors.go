package pipeline

import (
	"errors"
	"fmt"
)

// ErrArtifactTooSmall marks a payload that did not pass the size check
var ErrArtifactTooSmall = errors.New("artifact too small")

// FetchError wraps a resolver failure for one entry
type FetchError struct {
	Resolver   string
	Descriptor string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch %q: %v", e.Resolver, e.Descriptor, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InvalidArtifactError reports a retrieved payload at or below the minimum size
type InvalidArtifactError struct {
	Path    string
	Size    int64
	MinSize int64
}

func (e *InvalidArtifactError) Error() string {
	return fmt.Sprintf("%s: %d bytes, need more than %d", e.Path, e.Size, e.MinSize)
}

func (e *InvalidArtifactError) Unwrap() error {
	return ErrArtifactTooSmall
}
