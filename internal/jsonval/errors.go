package jsonval

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/gltfkit/internal/jsonlex"
)

// errOOB is returned when a sub-parser walks past the end of the token
// stream, which only happens for truncated or otherwise malformed input that
// slipped past the tokenizer's own checks (e.g. an object whose declared key
// count doesn't match its actual content).
var errOOB = errors.New("jsonval: token index out of bounds")

func errKind(want string, got jsonlex.Token) error {
	return fmt.Errorf("jsonval: expected %s, got token kind %d at offset %d", want, got.Kind, got.Start)
}

func errArity(want, got int) error {
	return fmt.Errorf("jsonval: expected array of length %d, got %d", want, got)
}
