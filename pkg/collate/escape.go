package collate

import (
	log "github.com/sirupsen/logrus"
)

// digitToInt returns the value of the hex digit c, or 0 if c isn't one.
func digitToInt(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return 10 + int(c-'a')
	case c >= 'A' && c <= 'F':
		return 10 + int(c-'A')
	}
	return 0
}

// decodeEscape decodes the escape sequence starting at the backslash under the cursor
// and leaves the cursor just past it.
//
// \u escapes are truncated to their low 8 bits. Code points above 127 therefore don't
// compare correctly; existing index orders depend on this, so it must stay as is.
func decodeEscape(c *cursor) byte {
	c.advance(1)
	e := c.peek()
	c.advance(1)

	switch e {
	case 'u':
		uc := digitToInt(c.at(0))<<12 | digitToInt(c.at(1))<<8 | digitToInt(c.at(2))<<4 | digitToInt(c.at(3))
		if uc > 127 {
			end := c.pos + 4
			if end > len(c.buf) {
				end = len(c.buf)
			}
			log.WithFields(log.Fields{"escape": string(c.buf[c.pos:end])}).Warn("collate::escape: decodeEscape; can't correctly compare \\u escape above ASCII")
		}
		c.advance(4)
		return byte(uc)
	case 'b':
		return '\b'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	return e
}
