package textscan

import (
	"bufio"
	"errors"
	"io"

	"github.com/specialistvlad/calparse/internal/errs"
)

// Cursor is a forward-only line source shared by the section extractors.
// Each extractor advances it from the current position to its own terminator
// and leaves it on the first line of the next section.
type Cursor struct {
	r    *bufio.Reader
	line int
	done bool
}

// NewCursor wraps r in a Cursor.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: bufio.NewReader(r)}
}

// Next returns the next line with its terminator. Once input is exhausted it
// returns an errs.ErrUnexpectedEOF error, since every caller still expects a
// line at that point.
func (c *Cursor) Next() (string, error) {
	if c.done {
		return "", c.eof()
	}
	s, err := c.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		c.done = true
		if s == "" {
			return "", c.eof()
		}
	}
	c.line++
	return s, nil
}

// Line returns the 1-based number of the last line returned by Next.
func (c *Cursor) Line() int {
	return c.line
}

func (c *Cursor) eof() error {
	return errs.New(errs.KindUnexpectedEOF, "textscan.Cursor", "unexpected end of input after line %d", c.line)
}
