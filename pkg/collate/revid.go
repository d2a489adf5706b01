package collate

import (
	"bytes"
)

// maxGenerationDigits bounds how far into a revision ID the hyphen may appear.
const maxGenerationDigits = 8

// RevIDCollator orders revision IDs of the form "<generation>-<suffix>".
type RevIDCollator struct{}

// Compare implements the REVID collation.
func (RevIDCollator) Compare(a, b []byte) int {
	return CollateRevIDs(a, b)
}

// Name returns the name the collator is registered under.
func (RevIDCollator) Name() string {
	return NameRevID
}

// CollateRevIDs compares generation numbers numerically and then suffixes
// lexicographically. If either input isn't a proper revision ID both are
// compared as plain bytes.
func CollateRevIDs(rev1, rev2 []byte) int {
	dash1 := bytes.IndexByte(rev1, '-')
	dash2 := bytes.IndexByte(rev2, '-')
	if (dash1 == 1 && dash2 == 1) ||
		dash1 > maxGenerationDigits || dash2 > maxGenerationDigits ||
		dash1 < 0 || dash2 < 0 {
		// single digit generations, or improper rev IDs; plain text comparison works.
		return defaultCollate(rev1, rev2)
	}

	gen1 := parseDigits(rev1[:dash1])
	gen2 := parseDigits(rev2[:dash2])
	if gen1 == 0 || gen2 == 0 {
		return defaultCollate(rev1, rev2)
	}

	if s := cmp(gen1, gen2); s != 0 {
		return s
	}
	return defaultCollate(rev1[dash1+1:], rev2[dash2+1:])
}

// defaultCollate is byte-wise comparison with the shorter input first on a tie.
func defaultCollate(a, b []byte) int {
	return bytes.Compare(a, b)
}

// parseDigits parses a decimal generation number. It returns 0 (never a valid
// generation) for an empty string or one containing a non-digit.
func parseDigits(s []byte) int {
	result := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		result = 10*result + int(c-'0')
	}
	return result
}
