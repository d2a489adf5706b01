package storage

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/dr0pdb/icecanecollate/pkg/collate"
	"github.com/dr0pdb/icecanecollate/pkg/common"
	"github.com/dr0pdb/icecanecollate/test"
	"github.com/stretchr/testify/assert"
)

var (
	testKeys   = test.TestKeys
	testValues = test.TestValues
)

// NewTestCustomComparator returns a new instance of storage.Comparator for testing purposes.
func NewTestCustomComparator() Comparator {
	return &customTestComparator{}
}

type customTestComparator struct{}

func (d *customTestComparator) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

func (d *customTestComparator) Name() string {
	return "CustomTestComparator"
}

func newOpenStorage(t *testing.T, cmp Comparator) *Storage {
	s, err := NewStorageWithCustomComparator("testindex", cmp, nil)
	assert.Nil(t, err, "Unexpected error in creating new storage")
	assert.Nil(t, s.Open(), "Unexpected error in opening storage")
	return s
}

func newJSONComparator(t *testing.T, name string) Comparator {
	cmp, err := collate.NewComparator(name, nil)
	assert.Nil(t, err)
	return cmp
}

func TestOpenWithDefaultComparator(t *testing.T) {
	s, err := NewStorage("testindex", nil)
	assert.Nil(t, err, "Unexpected error in creating new storage")

	err = s.Open()
	assert.Nil(t, err, "Unexpected error in opening storage")

	assert.Equal(t, DefaultComparator, s.Comparator(), "Default comparator not set when not passing any custom comparator")
}

func TestOpenWithCustomComparator(t *testing.T) {
	customComparator := NewTestCustomComparator()
	s := newOpenStorage(t, customComparator)

	assert.Equal(t, customComparator, s.Comparator(), "Custom comparator not set")
}

func TestNewStorageNilComparator(t *testing.T) {
	_, err := NewStorageWithCustomComparator("testindex", nil, nil)
	assert.NotNil(t, err)
}

func TestOpenComparatorMismatch(t *testing.T) {
	options := &Options{ComparatorName: collate.NameJSON}

	s, err := NewStorageWithCustomComparator("testindex", newJSONComparator(t, collate.NameRevID), options)
	assert.Nil(t, err)
	err = s.Open()
	assert.IsType(t, common.ComparatorMismatchError{}, err)

	s, err = NewStorageWithCustomComparator("testindex", newJSONComparator(t, collate.NameJSON), options)
	assert.Nil(t, err)
	assert.Nil(t, s.Open())
}

func TestOperationsBeforeOpenAndAfterClose(t *testing.T) {
	s, err := NewStorage("testindex", nil)
	assert.Nil(t, err)

	_, err = s.Get(testKeys[0], nil)
	assert.IsType(t, common.ClosedError{}, err, "reads must fail before Open")
	assert.IsType(t, common.ClosedError{}, s.Set(testKeys[0], testValues[0]))

	assert.Nil(t, s.Open())
	assert.Nil(t, s.Set(testKeys[0], testValues[0]))
	assert.Nil(t, s.Close())

	_, err = s.Get(testKeys[0], nil)
	assert.IsType(t, common.ClosedError{}, err)
	assert.IsType(t, common.ClosedError{}, s.Delete(testKeys[0]))
	_, err = s.Scan(nil, nil)
	assert.IsType(t, common.ClosedError{}, err)
}

func TestBasicGetSetDelete(t *testing.T) {
	s := newOpenStorage(t, DefaultComparator)
	defer s.Close()

	for i := range testKeys {
		err := s.Set(testKeys[i], testValues[i])
		assert.Nil(t, err, fmt.Sprintf("Unexpected error in setting value for key%d", i))
	}

	for i := range testKeys {
		val, err := s.Get(testKeys[i], nil)
		assert.Nil(t, err, fmt.Sprintf("Unexpected error in getting value for key%d", i))
		assert.Equal(t, testValues[i], val, fmt.Sprintf("Unexpected value for key%d. Expected %v, found %v", i, testValues[i], val))
	}

	err := s.Delete(testKeys[0])
	assert.Nil(t, err, "Unexpected error in deleting key0")

	_, err = s.Get(testKeys[0], nil)
	assert.NotNil(t, err, "Unexpected value for key0 after deletion")
	assert.IsType(t, common.NotFoundError{}, err)

	// other keys are untouched.
	val, err := s.Get(testKeys[1], nil)
	assert.Nil(t, err)
	assert.Equal(t, testValues[1], val)

	// set after delete brings it back.
	assert.Nil(t, s.Set(testKeys[0], testValues[4]))
	val, err = s.Get(testKeys[0], nil)
	assert.Nil(t, err)
	assert.Equal(t, testValues[4], val)
}

func TestSnapshotReads(t *testing.T) {
	s := newOpenStorage(t, DefaultComparator)
	defer s.Close()

	assert.Nil(t, s.Set(testKeys[0], testValues[0]))
	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.SeqNumber())

	assert.Nil(t, s.Set(testKeys[0], testValues[1]))
	assert.Nil(t, s.Set(testKeys[1], testValues[1]))

	val, err := s.Get(testKeys[0], &ReadOptions{Snapshot: snap})
	assert.Nil(t, err)
	assert.Equal(t, testValues[0], val, "snapshot must not observe later writes")

	_, err = s.Get(testKeys[1], &ReadOptions{Snapshot: snap})
	assert.IsType(t, common.NotFoundError{}, err)

	val, err = s.Get(testKeys[0], nil)
	assert.Nil(t, err)
	assert.Equal(t, testValues[1], val)
}

func TestWriteBatchAtomicity(t *testing.T) {
	s := newOpenStorage(t, DefaultComparator)
	defer s.Close()

	assert.Nil(t, s.Set(testKeys[4], testValues[4]))
	before := s.Snapshot()

	wb := &WriteBatch{}
	for i := 0; i < 4; i++ {
		wb.Set(testKeys[i], testValues[i])
	}
	wb.Delete(testKeys[4])
	assert.Equal(t, uint32(5), wb.Count())
	assert.Nil(t, s.Write(wb))
	assert.Equal(t, before.SeqNumber()+5, s.Snapshot().SeqNumber())

	// reusing the batch must not clobber what was written.
	wb.Reset()
	wb.Set(testKeys[0], []byte("ZZZZZZ"))

	for i := 0; i < 4; i++ {
		val, err := s.Get(testKeys[i], nil)
		assert.Nil(t, err)
		assert.Equal(t, testValues[i], val)

		_, err = s.Get(testKeys[i], &ReadOptions{Snapshot: before})
		assert.IsType(t, common.NotFoundError{}, err)
	}
	_, err := s.Get(testKeys[4], nil)
	assert.IsType(t, common.NotFoundError{}, err)

	// empty batches are a no op.
	assert.Nil(t, s.Write(&WriteBatch{}))
}

func TestJSONCollatedKeys(t *testing.T) {
	s := newOpenStorage(t, newJSONComparator(t, collate.NameJSON))
	defer s.Close()

	for _, k := range test.Shuffled(test.CollatedKeys, 42) {
		assert.Nil(t, s.Set(k, k))
	}

	itr, err := s.Scan(nil, nil)
	assert.Nil(t, err)
	idx := 0
	for ; itr.Valid(); itr.Next() {
		assert.Equal(t, test.CollatedKeys[idx], string(itr.Key()), fmt.Sprintf("unexpected key at idx %d", idx))
		idx++
	}
	assert.Equal(t, len(test.CollatedKeys), idx)
}

func TestJSONEqualKeysShareAnEntry(t *testing.T) {
	s := newOpenStorage(t, newJSONComparator(t, collate.NameJSON))
	defer s.Close()

	assert.Nil(t, s.Set([]byte(`[123,"x"]`), []byte("first")))
	assert.Nil(t, s.Set([]byte(`[123.0,"x"]`), []byte("second")))

	val, err := s.Get([]byte(`[1.23e2,"x"]`), nil)
	assert.Nil(t, err)
	assert.Equal(t, []byte("second"), val)

	itr, err := s.Scan(nil, nil)
	assert.Nil(t, err)
	cnt := 0
	for ; itr.Valid(); itr.Next() {
		cnt++
	}
	assert.Equal(t, 1, cnt)

	assert.Nil(t, s.Delete([]byte(`[123,"x"]`)))
	_, err = s.Get([]byte(`[123.0,"x"]`), nil)
	assert.IsType(t, common.NotFoundError{}, err)
}

func TestRawCollatedKeys(t *testing.T) {
	s := newOpenStorage(t, newJSONComparator(t, collate.NameJSONRaw))
	defer s.Close()

	for _, k := range test.Shuffled(test.RawCollatedKeys, 3) {
		assert.Nil(t, s.Set(k, nil))
	}

	itr, err := s.Scan(nil, nil)
	assert.Nil(t, err)
	idx := 0
	for ; itr.Valid(); itr.Next() {
		assert.Equal(t, test.RawCollatedKeys[idx], string(itr.Key()))
		idx++
	}
	assert.Equal(t, len(test.RawCollatedKeys), idx)
}

func TestRevIDKeys(t *testing.T) {
	s := newOpenStorage(t, newJSONComparator(t, collate.NameRevID))
	defer s.Close()

	for _, k := range test.Shuffled(test.RevIDs, 11) {
		assert.Nil(t, s.Set(k, k))
	}

	itr, err := s.Scan([]byte("10-"), nil)
	assert.Nil(t, err)
	var got []string
	for ; itr.Valid(); itr.Next() {
		got = append(got, string(itr.Key()))
	}
	assert.Equal(t, test.RevIDs[3:], got)
}

func TestConcurrentWrites(t *testing.T) {
	s := newOpenStorage(t, newJSONComparator(t, collate.NameJSON))
	defer s.Close()

	l := 500
	wg := &sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < l; i++ {
				k := []byte(fmt.Sprintf(`[%d,%d]`, w, i))
				assert.Nil(t, s.Set(k, k))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, uint64(4*l), s.Snapshot().SeqNumber())

	itr, err := s.Scan(nil, nil)
	assert.Nil(t, err)
	var prev []byte
	cnt := 0
	for ; itr.Valid(); itr.Next() {
		if prev != nil {
			assert.Equal(t, -1, s.Comparator().Compare(prev, itr.Key()))
		}
		prev = itr.Key()
		cnt++
	}
	assert.Equal(t, 4*l, cnt)
}

func TestOpenInvalidMaxLevel(t *testing.T) {
	for _, level := range []int32{-1, maxAllowedLevel + 2} {
		s, err := NewStorage("testindex", &Options{MaxLevel: level})
		assert.Nil(t, err)
		assert.NotPanics(t, func() { err = s.Open() })
		assert.NotNil(t, err, fmt.Sprintf("max level %d should be rejected", level))

		_, err = s.Get(testKeys[0], nil)
		assert.IsType(t, common.ClosedError{}, err, "a failed Open leaves the storage unusable")
	}

	s, err := NewStorage("testindex", &Options{MaxLevel: maxAllowedLevel})
	assert.Nil(t, err)
	assert.Nil(t, s.Open())
}

func TestWriteCorruptBatchAppliesNothing(t *testing.T) {
	s := newOpenStorage(t, DefaultComparator)
	defer s.Close()

	assert.Nil(t, s.Set(testKeys[0], testValues[0]))

	wb := &WriteBatch{}
	wb.Set(testKeys[1], testValues[1])
	wb.Set(testKeys[2], testValues[2])
	// chop the last record in half.
	wb.data = wb.data[:len(wb.data)-3]

	assert.NotNil(t, s.Write(wb))
	assert.Equal(t, uint64(1), s.Snapshot().SeqNumber())
	assert.Equal(t, 1, s.memtable.len())

	_, err := s.Get(testKeys[1], nil)
	assert.IsType(t, common.NotFoundError{}, err)

	// the next write gets fresh sequence numbers.
	assert.Nil(t, s.Set(testKeys[1], testValues[1]))
	assert.Equal(t, uint64(2), s.Snapshot().SeqNumber())
	val, err := s.Get(testKeys[1], nil)
	assert.Nil(t, err)
	assert.Equal(t, testValues[1], val)
}
