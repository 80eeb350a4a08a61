// Package errs provides the classified error taxonomy used across calparse.
// Every failure is fatal for the run; classification exists so callers and
// tests can tell a structural problem in the report from a filesystem
// conflict without matching on message text.
package errs

import (
	"errors"
	"fmt"
)

// Kind represents the classification of a conversion error.
type Kind int

const (
	// KindStructural is a missing blank line, sentinel or header.
	KindStructural Kind = iota
	// KindDuplicateKey is a key inserted twice into a collision-safe map.
	KindDuplicateKey
	// KindSchema is a result table whose info row is not ["DataType:", name].
	KindSchema
	// KindNamingCollision is two result tables sharing an output basename.
	KindNamingCollision
	// KindMalformedRow is a row with the wrong number of cells.
	KindMalformedRow
	// KindUnexpectedEOF is input ending before a required line.
	KindUnexpectedEOF
	// KindFilesystemConflict is an output directory that already exists.
	KindFilesystemConflict
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindDuplicateKey:
		return "duplicate-key"
	case KindSchema:
		return "schema"
	case KindNamingCollision:
		return "naming-collision"
	case KindMalformedRow:
		return "malformed-row"
	case KindUnexpectedEOF:
		return "unexpected-eof"
	case KindFilesystemConflict:
		return "filesystem-conflict"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. Use errors.Is against these.
var (
	ErrStructural         = errors.New("structural violation")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrSchema             = errors.New("schema violation")
	ErrNamingCollision    = errors.New("naming collision")
	ErrMalformedRow       = errors.New("malformed row")
	ErrUnexpectedEOF      = errors.New("unexpected end of input")
	ErrFilesystemConflict = errors.New("filesystem conflict")
)

var sentinels = map[Kind]error{
	KindStructural:         ErrStructural,
	KindDuplicateKey:       ErrDuplicateKey,
	KindSchema:             ErrSchema,
	KindNamingCollision:    ErrNamingCollision,
	KindMalformedRow:       ErrMalformedRow,
	KindUnexpectedEOF:      ErrUnexpectedEOF,
	KindFilesystemConflict: ErrFilesystemConflict,
}

// Error wraps a failure with its classification and the operation that
// raised it.
type Error struct {
	Kind    Kind
	Op      string // e.g. "parser.ExtractMetadata"
	Line    int    // 1-based input line, 0 when unknown
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = sentinels[e.Kind].Error()
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// New creates a classified error with a formatted message.
func New(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error. It returns nil for a nil err.
func Wrap(err error, kind Kind, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// AtLine returns a copy of e annotated with an input line number.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

// KindOf returns the classification of err if any error in its chain is a
// classified *Error.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k, true
		}
	}
	return 0, false
}
