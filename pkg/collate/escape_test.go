package collate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func escape(s string) (byte, int) {
	c := &cursor{buf: []byte(s)}
	b := decodeEscape(c)
	return b, c.pos
}

func TestConvertEscape(t *testing.T) {
	b, pos := escape(`\\`)
	assert.Equal(t, byte('\\'), b)
	assert.Equal(t, 2, pos)

	b, _ = escape(`\t`)
	assert.Equal(t, byte('\t'), b)
	b, _ = escape(`\n`)
	assert.Equal(t, byte('\n'), b)
	b, _ = escape(`\r`)
	assert.Equal(t, byte('\r'), b)
	b, _ = escape(`\b`)
	assert.Equal(t, byte('\b'), b)
	b, _ = escape(`\"`)
	assert.Equal(t, byte('"'), b)
	b, _ = escape(`\/`)
	assert.Equal(t, byte('/'), b)

	b, pos = escape(`\u0045x`)
	assert.Equal(t, byte('E'), b)
	assert.Equal(t, 6, pos)

	b, _ = escape(`\u0001`)
	assert.Equal(t, byte(1), b)
	b, _ = escape(`\u0000`)
	assert.Equal(t, byte(0), b)
	b, _ = escape(`\u004A`)
	assert.Equal(t, byte('J'), b)
}

// Known limitation: code points above 127 keep only their low byte.
func TestConvertEscapeTruncates(t *testing.T) {
	b, pos := escape(`\u00e9`)
	assert.Equal(t, byte(0xe9), b)
	assert.Equal(t, 6, pos)

	b, _ = escape(`\u0141`)
	assert.Equal(t, byte('A'), b)
}

func TestConvertEscapeAtEndOfInput(t *testing.T) {
	assert.NotPanics(t, func() { escape(`\`) })
	assert.NotPanics(t, func() { escape(`\u1`) })

	_, pos := escape(`\u1`)
	assert.Equal(t, 3, pos)
}

func TestDigitToInt(t *testing.T) {
	assert.Equal(t, 1, digitToInt('1'))
	assert.Equal(t, 7, digitToInt('7'))
	assert.Equal(t, 0xc, digitToInt('c'))
	assert.Equal(t, 0xc, digitToInt('C'))
	assert.Equal(t, 0xa, digitToInt('a'))
	assert.Equal(t, 0xf, digitToInt('F'))
	assert.Equal(t, 0, digitToInt('g'))
}
