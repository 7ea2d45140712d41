package lexer

import "github.com/thresh-lang/threshc/internal/source"

// cursor is a byte-level read head over one source file.
type cursor struct {
	file *source.File
	pos  uint32
}

func newCursor(file *source.File) cursor {
	return cursor{file: file}
}

func (c *cursor) eof() bool {
	return int(c.pos) >= len(c.file.Content)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.pos]
}

func (c *cursor) peekAt(off int) (byte, bool) {
	idx := int(c.pos) + off
	if idx < 0 || idx >= len(c.file.Content) {
		return 0, false
	}
	return c.file.Content[idx], true
}

func (c *cursor) advance() byte {
	b := c.peek()
	c.pos++
	return b
}

func (c *cursor) matches(b byte) bool {
	if c.peek() != b {
		return false
	}
	c.pos++
	return true
}
