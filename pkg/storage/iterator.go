package storage

// Iterator interface
type Iterator interface {
	// Checks if the current position of the iterator is valid.
	Valid() bool

	// Move to the first entry of the source.
	// Call Valid() to ensure that the iterator is valid after the seek.
	SeekToFirst()

	// Seek the iterator to the first element whose key is >= target
	// Call Valid() to ensure that the iterator is valid after the seek.
	Seek(target []byte)

	// Moves to the next key-value pair in the source.
	// Call valid() to ensure that the iterator is valid.
	// REQUIRES: Current position of iterator is valid. Panic otherwise.
	Next()

	// Get the key of the current iterator position.
	// REQUIRES: Current position of iterator is valid. Panics otherwise.
	Key() []byte

	// Get the value of the current iterator position.
	// REQUIRES: Current position of iterator is valid. Panics otherwise.
	Value() []byte
}

// KeyValueIterator iterates over the user keys of the storage as of a sequence number.
//
// Each user key is returned once with its newest visible value. Deleted keys are skipped.
type KeyValueIterator struct {
	itr  *skipListIterator
	ucmp Comparator
	seq  uint64

	key, value []byte
	valid      bool
}

var _ Iterator = (*KeyValueIterator)(nil)

// Valid checks if the current position of the iterator is valid.
func (si *KeyValueIterator) Valid() bool {
	return si.valid
}

// SeekToFirst moves to the first entry of the source.
// Call Valid() to ensure that the iterator is valid after the seek.
func (si *KeyValueIterator) SeekToFirst() {
	si.itr.SeekToFirst()
	si.findNextUserEntry(nil)
}

// Seek the iterator to the first element whose key is >= target
// Call Valid() to ensure that the iterator is valid after the seek.
func (si *KeyValueIterator) Seek(target []byte) {
	si.itr.Seek(newInternalKey(target, internalKeyKindSeek, si.seq))
	si.findNextUserEntry(nil)
}

// Next moves to the next key-value pair in the source.
// Call valid() to ensure that the iterator is valid.
// REQUIRES: Current position of iterator is valid. Panic otherwise.
func (si *KeyValueIterator) Next() {
	if !si.valid {
		panic("Next on an invalid iterator position.")
	}
	skip := si.key
	si.itr.Next()
	si.findNextUserEntry(skip)
}

// Key returns the user key of the current iterator position.
// REQUIRES: Current position of iterator is valid. Panics otherwise.
func (si *KeyValueIterator) Key() []byte {
	if !si.valid {
		panic("Key on an invalid iterator position.")
	}
	return si.key
}

// Value gets the value of the current iterator position.
// REQUIRES: Current position of iterator is valid. Panics otherwise.
func (si *KeyValueIterator) Value() []byte {
	if !si.valid {
		panic("Value on an invalid iterator position.")
	}
	return si.value
}

// findNextUserEntry moves the underlying iterator to the newest visible entry of the
// next live user key. Entries of skip (if non nil) are passed over.
func (si *KeyValueIterator) findNextUserEntry(skip []byte) {
	for ; si.itr.Valid(); si.itr.Next() {
		ikey := internalKey(si.itr.Key())
		if ikey.sequenceNumber() > si.seq {
			continue
		}

		ukey := ikey.userKey()
		if skip != nil && si.ucmp.Compare(ukey, skip) == 0 {
			continue
		}

		if ikey.kind() == internalKeyKindDelete {
			skip = ukey
			continue
		}

		si.key = ukey
		si.value = si.itr.Value()
		si.valid = true
		return
	}

	si.key, si.value = nil, nil
	si.valid = false
}

func newKeyValueIterator(itr *skipListIterator, ucmp Comparator, seq uint64) *KeyValueIterator {
	return &KeyValueIterator{
		itr:  itr,
		ucmp: ucmp,
		seq:  seq,
	}
}
