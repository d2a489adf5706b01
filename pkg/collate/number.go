package collate

import (
	"errors"
	"strconv"
)

// numberBound selects how far the numeric parser may look for the end of a number.
type numberBound int

const (
	// delimited numbers end at the first byte that can't extend the numeral.
	delimited numberBound = iota
	// bounded numbers may extend up to the end of the input span, so anything
	// strconv accepts as a float literal (hex mantissas included) is consumed.
	bounded
)

func isNumeralByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

// readNumber parses the number under the cursor as a float64 and moves past it.
// Like strtod it uses the longest prefix that parses; the cursor always moves
// at least one byte so that a malformed numeral can't stall the collator.
func readNumber(c *cursor, bound numberBound) float64 {
	text := c.rest()
	end := len(text)
	if bound == delimited {
		end = 0
		for end < len(text) && isNumeralByte(text[end]) {
			end++
		}
	}

	value, n := parseFloatPrefix(text[:end])
	if n == 0 {
		n = 1
	}
	c.advance(n)
	return value
}

// parseFloatPrefix returns the value of the longest prefix of text that parses as a
// float, along with the prefix length.
func parseFloatPrefix(text []byte) (float64, int) {
	for end := len(text); end > 0; end-- {
		f, err := strconv.ParseFloat(string(text[:end]), 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return f, end
		}
	}
	return 0, 0
}

// compareNumbers compares the numbers under both cursors.
func compareNumbers(c1, c2 *cursor, bound numberBound) int {
	return dcmp(readNumber(c1, bound), readNumber(c2, bound))
}

func dcmp(n1, n2 float64) int {
	switch {
	case n1 > n2:
		return 1
	case n1 < n2:
		return -1
	}
	return 0
}
