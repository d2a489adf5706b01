package collate

// inversePriorityMap lists the ASCII characters in ascending Unicode collation priority.
// Each lowercase letter directly precedes its uppercase form.
const inversePriorityMap = "\t\n\r `^_-,;:!?.'\"()[]{}@*/\\&#%+<=>|~$0123456789" +
	"aAbBcCdDeEfFgGhHiIjJkKlLmMnNoOpPqQrRsStTuUvVwWxXyYzZ"

type priorityTable [128]uint8

var (
	// charPriority maps an ASCII character to its relative priority in the Unicode collation sequence.
	charPriority priorityTable
	// charPriorityCaseInsensitive is the same thing, with lowercase letters given the priority of uppercase.
	charPriorityCaseInsensitive priorityTable
)

func init() {
	charPriority, charPriorityCaseInsensitive = newPriorityTables()
}

func newPriorityTables() (cs, ci priorityTable) {
	priority := uint8(1)
	for i := 0; i < len(inversePriorityMap); i++ {
		cs[inversePriorityMap[i]] = priority
		priority++
	}

	ci = cs
	for c := byte('a'); c <= 'z'; c++ {
		ci[c] = cs[c-'a'+'A']
	}
	return cs, ci
}

// nextChar returns the next decoded character of the string literal under the cursor.
// It returns false, without consuming anything, at the closing quote or the end of input.
func nextChar(c *cursor) (byte, bool) {
	if c.done() {
		return 0, false
	}
	b := c.peek()
	switch b {
	case '"':
		return 0, false
	case '\\':
		return decodeEscape(c), true
	}
	c.advance(1)
	return b, true
}

// compareStringsASCII compares two string literals by the byte values of their
// decoded characters. On equality both cursors are moved past the strings.
func compareStringsASCII(c1, c2 *cursor) int {
	c1.advance(1)
	c2.advance(1)
	for {
		ch1, more1 := nextChar(c1)
		ch2, more2 := nextChar(c2)

		// if one string ends, the other is greater; if both end, they're equal.
		if !more1 {
			if !more2 {
				break
			}
			return -1
		} else if !more2 {
			return 1
		}

		if s := cmp(int(ch1), int(ch2)); s != 0 {
			return s
		}
	}

	c1.advance(1)
	c2.advance(1)
	return 0
}

// compareStringsUnicodeFast compares two ASCII string literals using the Unicode
// priority tables. The comparison is case-insensitive; if the strings are otherwise
// equal, the first case difference decides, with uppercase greater than lowercase.
//
// ok is false if a non-ASCII character was found. The cursors are then left mid-string.
func compareStringsUnicodeFast(c1, c2 *cursor) (result int, ok bool) {
	resultIfEqual := 0
	c1.advance(1)
	c2.advance(1)
	for {
		ch1, more1 := nextChar(c1)
		ch2, more2 := nextChar(c2)

		if !more1 {
			if !more2 {
				break
			}
			return -1, true
		} else if !more2 {
			return 1, true
		}

		if ch1&0x80 != 0 || ch2&0x80 != 0 {
			return 0, false
		}

		if s := cmp(int(charPriorityCaseInsensitive[ch1]), int(charPriorityCaseInsensitive[ch2])); s != 0 {
			return s, true
		}

		if resultIfEqual == 0 && ch1 != ch2 {
			resultIfEqual = cmp(int(charPriority[ch1]), int(charPriority[ch2]))
		}
	}

	if resultIfEqual != 0 {
		return resultIfEqual, true
	}

	c1.advance(1)
	c2.advance(1)
	return 0, true
}

// compareStringsUnicode tries the fast path and hands both strings to the Unicode
// collation service once non-ASCII content turns up.
func compareStringsUnicode(c1, c2 *cursor, uc UnicodeCollator) int {
	start1, start2 := *c1, *c2
	if result, ok := compareStringsUnicodeFast(c1, c2); ok {
		return result
	}

	*c1, *c2 = start1, start2
	str1 := decodeString(c1)
	str2 := decodeString(c2)
	return sign(uc.Compare(str1, str2))
}

// decodeString unescapes the string literal under the cursor and moves past it.
func decodeString(c *cursor) []byte {
	c.advance(1)
	buf := make([]byte, 0, len(c.rest()))
	for {
		ch, more := nextChar(c)
		if !more {
			break
		}
		buf = append(buf, ch)
	}
	c.advance(1)
	return buf
}

func sign(n int) int {
	return cmp(n, 0)
}
