package collate

import (
	log "github.com/sirupsen/logrus"
)

// valueType is the type of a JSON token, ordered according to CouchDB collation order.
// The ordinal is used directly as the default collation rank.
type valueType int

const (
	endArray valueType = iota
	endObject
	comma
	colon
	null
	falseValue
	trueValue
	number
	stringValue
	array
	object
	illegal
)

// rawOrderOfValueType maps a valueType to its rank in "raw" collation:
// number, false, null, true, object, array, string.
var rawOrderOfValueType = [...]int{-4, -3, -2, -1, 2, 1, 3, 0, 6, 5, 4, 7}

// valueTypeOf classifies the token starting with c.
func valueTypeOf(c byte) valueType {
	switch {
	case c == 'n':
		return null
	case c == 'f':
		return falseValue
	case c == 't':
		return trueValue
	case c >= '0' && c <= '9', c == '-':
		return number
	case c == '"':
		return stringValue
	case c == ']':
		return endArray
	case c == '}':
		return endObject
	case c == ',':
		return comma
	case c == ':':
		return colon
	case c == '[':
		return array
	case c == '{':
		return object
	}

	log.WithFields(log.Fields{"char": string(rune(c))}).Warn("collate::token: valueTypeOf; unexpected character parsing JSON")
	return illegal
}

// compareTypes returns the relative order of two differing value types.
func compareTypes(t1, t2 valueType, raw bool) int {
	if raw {
		return cmp(rawOrderOfValueType[t1], rawOrderOfValueType[t2])
	}
	return cmp(int(t1), int(t2))
}

func cmp(n1, n2 int) int {
	switch {
	case n1 > n2:
		return 1
	case n1 < n2:
		return -1
	}
	return 0
}

// cursor is a read position inside one input span.
// Reads past the end yield 0, which no token starts with.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) peek() byte {
	return c.at(0)
}

func (c *cursor) at(off int) byte {
	i := c.pos + off
	if i < 0 || i >= len(c.buf) {
		return 0
	}
	return c.buf[i]
}

func (c *cursor) done() bool {
	return c.pos >= len(c.buf)
}

func (c *cursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.buf) {
		c.pos = len(c.buf)
	}
}

func (c *cursor) rest() []byte {
	return c.buf[c.pos:]
}
