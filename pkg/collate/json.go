package collate

// Mode selects the collation rules used by a JSONCollator.
type Mode int

const (
	// Unicode is CouchDB's default collation, including Unicode collation for strings.
	Unicode Mode = iota
	// Raw is CouchDB's "raw" collation, which orders scalar types differently.
	Raw
	// ASCII is like Unicode except that strings are compared as binary UTF-8.
	ASCII
)

func (m Mode) String() string {
	switch m {
	case Unicode:
		return "Unicode"
	case Raw:
		return "Raw"
	case ASCII:
		return "ASCII"
	}
	return "Unknown"
}

// JSONCollator orders serialized JSON values without parsing them.
//
// WARNING: it only works on valid JSON with no whitespace between tokens. Other
// input yields an unspecified (but memory safe) result.
type JSONCollator struct {
	mode    Mode
	unicode UnicodeCollator
}

// NewJSONCollator returns a collator for the given mode.
// A nil unicode service selects the process wide default.
func NewJSONCollator(mode Mode, unicode UnicodeCollator) *JSONCollator {
	if unicode == nil {
		unicode = DefaultUnicodeCollator()
	}
	return &JSONCollator{
		mode:    mode,
		unicode: unicode,
	}
}

// Mode returns the collation mode.
func (jc *JSONCollator) Mode() Mode {
	return jc.mode
}

// Compare returns -1, 0 or 1 depending on whether a sorts before, equal to or after b.
func (jc *JSONCollator) Compare(a, b []byte) int {
	return collateJSON(jc.mode, jc.unicode, a, b)
}

// Name returns the name the collator is registered under.
func (jc *JSONCollator) Name() string {
	switch jc.mode {
	case Raw:
		return NameJSONRaw
	case ASCII:
		return NameJSONASCII
	}
	return NameJSON
}

// CollateJSON compares two JSON values under mode using the default Unicode service.
func CollateJSON(mode Mode, a, b []byte) int {
	return collateJSON(mode, DefaultUnicodeCollator(), a, b)
}

func collateJSON(mode Mode, uc UnicodeCollator, a, b []byte) int {
	c1 := &cursor{buf: a}
	c2 := &cursor{buf: b}
	depth := 0

	for {
		type1 := valueTypeOf(c1.peek())
		type2 := valueTypeOf(c2.peek())

		// if the types don't match, their relative order decides.
		if type1 != type2 {
			return compareTypes(type1, type2, mode == Raw)
		}

		switch type1 {
		case null, trueValue:
			c1.advance(4)
			c2.advance(4)
		case falseValue:
			c1.advance(5)
			c2.advance(5)
		case number:
			bound := delimited
			if depth == 0 {
				bound = bounded
			}
			if diff := compareNumbers(c1, c2, bound); diff != 0 {
				return diff
			}
		case stringValue:
			var diff int
			if mode == ASCII {
				diff = compareStringsASCII(c1, c2)
			} else {
				diff = compareStringsUnicode(c1, c2, uc)
			}
			if diff != 0 {
				return diff
			}
		case array, object:
			c1.advance(1)
			c2.advance(1)
			depth++
		case endArray, endObject:
			c1.advance(1)
			c2.advance(1)
			depth--
		case comma, colon:
			c1.advance(1)
			c2.advance(1)
		case illegal:
			return 0
		}

		// keep going as long as we're inside an array or object.
		if depth <= 0 {
			return 0
		}
	}
}
