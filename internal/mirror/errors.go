package mirror

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Beatmapset when the mirror answers with null,
// an empty body, or an object without an id.
var ErrNotFound = errors.New("beatmap set not found")

// FetchError describes a failed request against the mirror.
//
// Status is the HTTP status code when the server answered, and 0 for
// network and decoding failures.
type FetchError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: mirror answered %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
