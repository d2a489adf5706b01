package storage

import (
	"fmt"

	"github.com/dr0pdb/icecanecollate/pkg/common"
	log "github.com/sirupsen/logrus"
)

// memtable is the in-memory store of internal keys.
// It is thread safe and can be accessed concurrently.
type memtable struct {
	skiplist   *skipList
	comparator *internalKeyComparator
}

// get returns the newest value of ikey's user key whose sequence number is <= ikey's.
// returns a NotFoundError if there is no such entry or the newest one is a deletion.
func (m *memtable) get(ikey internalKey) ([]byte, internalKeyKind, error) {
	log.WithFields(log.Fields{"seq": ikey.sequenceNumber()}).Debug("storage::memtable: get; started")

	node := m.skiplist.getEqualOrGreater(ikey)
	if node == nil {
		return nil, internalKeyKindDelete, common.NewNotFoundError("key not found")
	}

	found := internalKey(node.getKey())
	if m.comparator.userKeyComparator.Compare(found.userKey(), ikey.userKey()) != 0 {
		return nil, internalKeyKindDelete, common.NewNotFoundError("key not found")
	}

	if found.kind() == internalKeyKindDelete {
		log.WithFields(log.Fields{"seq": found.sequenceNumber()}).Debug("storage::memtable: get; found a deletion marker")
		return nil, internalKeyKindDelete, common.NewNotFoundError(fmt.Sprintf("key deleted at seq %d", found.sequenceNumber()))
	}

	return node.getValue(), found.kind(), nil
}

// set adds an entry to the memtable.
func (m *memtable) set(ikey internalKey, value []byte) error {
	m.skiplist.set(ikey, value)
	return nil
}

// len returns the number of internal keys held, deletion markers included.
func (m *memtable) len() int {
	return m.skiplist.len()
}

// newIterator returns an iterator over the internal keys of the memtable.
func (m *memtable) newIterator() *skipListIterator {
	return m.skiplist.newSkipListIterator()
}

// newMemtable returns a new instance of the memtable
func newMemtable(skiplist *skipList, comparator *internalKeyComparator) *memtable {
	return &memtable{
		skiplist:   skiplist,
		comparator: comparator,
	}
}
