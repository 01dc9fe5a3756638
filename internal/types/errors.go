package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTimestamp is wrapped by every timestamp or offset parse failure.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ErrMissingInput matches any *MissingInputError via errors.Is.
var ErrMissingInput = errors.New("missing input file")

// ToolError reports a non-zero exit from an external binary. Output holds the
// tool's combined stdout/stderr verbatim.
type ToolError struct {
	Tool   string
	Step   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	out := strings.TrimRight(e.Output, "\n")
	if out == "" {
		return fmt.Sprintf("%s %s: %v", e.Tool, e.Step, e.Err)
	}
	return fmt.Sprintf("%s %s: %v\n%s", e.Tool, e.Step, e.Err, out)
}

func (e *ToolError) Unwrap() error { return e.Err }

type MissingInputError struct {
	Kind string
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %q: not found", e.Kind, e.Path)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

// StatusError is a non-2xx reply from an HTTP API. Body is truncated and has
// credentials redacted.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s status %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s status %d: %s", e.Service, e.Code, e.Body)
}

// IsUnauthorized reports whether err carries an HTTP 401.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 401
}
