package test

import (
	"math/rand"
	"os"
	"path"
)

var (
	// TestDirectory is the scratch directory for tests that touch the file system.
	TestDirectory = path.Join(os.TempDir(), "icecanecollatetest")

	// TestKeys - test data
	TestKeys [][]byte = [][]byte{[]byte("Key1"), []byte("Key2"), []byte("Key3"), []byte("Key4"), []byte("Key5")}

	// TestValues - test data
	TestValues [][]byte = [][]byte{[]byte("Value1"), []byte("Value2"), []byte("Value3"), []byte("Value4"), []byte("Value5")}
)

// CollatedKeys are JSON values in ascending CouchDB default collation order.
// Taken from CouchDB's view_collation tests.
var CollatedKeys = []string{
	`null`,
	`false`,
	`true`,
	`1`,
	`2`,
	`3.0`,
	`4`,
	`"a"`,
	`"A"`,
	`"aa"`,
	`"b"`,
	`"B"`,
	`"ba"`,
	`"bb"`,
	`["a"]`,
	`["b"]`,
	`["b","c"]`,
	`["b","c","a"]`,
	`["b","d"]`,
	`["b","d","e"]`,
	`{"a":1}`,
	`{"a":2}`,
	`{"b":1}`,
	`{"b":2}`,
	`{"b":2,"a":1}`,
	`{"b":2,"c":2}`,
}

// RawCollatedKeys are JSON values in ascending CouchDB raw collation order.
var RawCollatedKeys = []string{
	`-1`,
	`0`,
	`17`,
	`false`,
	`null`,
	`true`,
	`{"a":1}`,
	`{"b":1}`,
	`["a"]`,
	`["b","c"]`,
	`"a"`,
	`"A"`,
	`"b"`,
}

// RevIDs are revision IDs in ascending REVID collation order.
var RevIDs = []string{
	`1-foo`,
	`2-bar`,
	`9-zzz`,
	`10-aaa`,
	`89-foo`,
	`123-bar`,
	`456-foo`,
	`456-foofoo`,
}

// Shuffled returns a shuffled copy of keys as byte slices.
func Shuffled(keys []string, seed int64) [][]byte {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// CreateTestDirectory creates a test directory for running tests.
func CreateTestDirectory(testDirectory string) {
	os.MkdirAll(testDirectory, os.ModePerm)
}

// CleanupTestDirectory cleans up the test directory.
func CleanupTestDirectory(testDirectory string) error {
	dir, err := os.ReadDir(testDirectory)
	if err != nil {
		return err
	}
	for _, d := range dir {
		os.RemoveAll(path.Join([]string{testDirectory, d.Name()}...))
	}
	return nil
}
