package storage

import (
	"fmt"
	"sync"

	"github.com/dr0pdb/icecanecollate/pkg/common"
	log "github.com/sirupsen/logrus"
)

// Storage is an in-memory ordered index whose key order is defined by a Comparator.
//
// It is safe for concurrent use. Writes are applied in batches; a batch becomes
// visible to readers all at once.
type Storage struct {
	name    string
	options *Options

	// mu guards seq, closed and the order in which batches reach the memtable.
	mu     sync.RWMutex
	seq    uint64
	closed bool
	opened bool

	memtable *memtable

	ukComparator Comparator
	ikComparator *internalKeyComparator
}

// Open validates the options and prepares the storage for use.
func (s *Storage) Open() error {
	log.WithFields(log.Fields{"name": s.name, "comparator": s.ukComparator.Name()}).Info("storage::storage: Open; started")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return nil
	}

	if s.options.ComparatorName != "" && s.options.ComparatorName != s.ukComparator.Name() {
		log.WithFields(log.Fields{
			"expected": s.options.ComparatorName,
			"actual":   s.ukComparator.Name(),
		}).Error("storage::storage: Open; comparator mismatch")
		return common.NewComparatorMismatchError(fmt.Sprintf("index %s expects comparator %s, got %s", s.name, s.options.ComparatorName, s.ukComparator.Name()))
	}

	if s.options.MaxLevel < 0 || s.options.MaxLevel > maxAllowedLevel {
		log.WithFields(log.Fields{"maxLevel": s.options.MaxLevel}).Error("storage::storage: Open; invalid max level")
		return fmt.Errorf("invalid max level %d, must be between 0 and %d", s.options.MaxLevel, maxAllowedLevel)
	}

	s.memtable = newMemtable(newSkipList(s.options.MaxLevel, s.ikComparator), s.ikComparator)
	s.opened = true

	log.WithFields(log.Fields{"name": s.name}).Info("storage::storage: Open; done")
	return nil
}

// Get returns the value of key. A NotFoundError is returned if the key is absent or deleted.
// opts may be nil.
func (s *Storage) Get(key []byte, opts *ReadOptions) ([]byte, error) {
	log.WithFields(log.Fields{"key": string(key)}).Debug("storage::storage: Get; started")

	seq, err := s.readSeq(opts)
	if err != nil {
		return nil, err
	}

	value, _, err := s.memtable.get(newInternalKey(key, internalKeyKindSeek, seq))
	return value, err
}

// Set sets the value for the key. Keys that compare equal to key are overwritten.
func (s *Storage) Set(key, value []byte) error {
	wb := &WriteBatch{}
	wb.Set(key, value)
	return s.Write(wb)
}

// Delete deletes the key.
func (s *Storage) Delete(key []byte) error {
	wb := &WriteBatch{}
	wb.Delete(key)
	return s.Write(wb)
}

// Write applies the batch atomically.
func (s *Storage) Write(wb *WriteBatch) error {
	count := wb.Count()
	log.WithFields(log.Fields{"count": count}).Debug("storage::storage: Write; started")
	if count == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUsable(); err != nil {
		return err
	}

	if s.seq+uint64(count) > maxSequenceNumber {
		return fmt.Errorf("sequence number overflow")
	}

	// decode every record first so that a corrupt batch leaves nothing behind.
	type record struct {
		kind        internalKeyKind
		ukey, value []byte
	}
	records := make([]record, 0, count)
	itr := wb.getIterator()
	for i := uint32(0); i < count; i++ {
		kind, ukey, value, ok := itr.next()
		if !ok {
			log.WithFields(log.Fields{"record": i, "count": count}).Error("storage::storage: Write; corrupt write batch")
			return fmt.Errorf("corrupt write batch: record %d of %d unreadable", i, count)
		}
		records = append(records, record{kind: kind, ukey: ukey, value: value})
	}

	seq := s.seq + 1
	wb.setSeqNum(seq)

	for i, r := range records {
		// value aliases the batch buffer, which the caller may reuse.
		value := r.value
		if value != nil {
			value = append([]byte(nil), value...)
		}
		if err := s.memtable.set(newInternalKey(r.ukey, r.kind, seq+uint64(i)), value); err != nil {
			return err
		}
	}

	s.seq += uint64(count)
	log.WithFields(log.Fields{"seq": s.seq, "entries": s.memtable.len()}).Debug("storage::storage: Write; done")
	return nil
}

// Snapshot returns a snapshot of the current state.
func (s *Storage) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{SeqNum: s.seq}
}

// Scan returns an iterator positioned at the first key >= target.
// A nil target starts at the smallest key. opts may be nil.
func (s *Storage) Scan(target []byte, opts *ReadOptions) (Iterator, error) {
	seq, err := s.readSeq(opts)
	if err != nil {
		return nil, err
	}

	itr := newKeyValueIterator(s.memtable.newIterator(), s.ukComparator, seq)
	if target == nil {
		itr.SeekToFirst()
	} else {
		itr.Seek(target)
	}
	return itr, nil
}

// Comparator returns the user key comparator.
func (s *Storage) Comparator() Comparator {
	return s.ukComparator
}

// Close closes the storage. Further operations fail.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	log.WithFields(log.Fields{"name": s.name}).Info("storage::storage: Close; done")
	return nil
}

// readSeq returns the sequence number a read with opts observes.
func (s *Storage) readSeq(opts *ReadOptions) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkUsable(); err != nil {
		return 0, err
	}
	if opts != nil && opts.Snapshot != nil {
		return opts.Snapshot.SeqNumber(), nil
	}
	return s.seq, nil
}

// REQUIRES: the caller holds mu.
func (s *Storage) checkUsable() error {
	if s.closed {
		return common.NewClosedError(fmt.Sprintf("storage %s is closed", s.name))
	}
	if !s.opened {
		return common.NewClosedError(fmt.Sprintf("storage %s is not open", s.name))
	}
	return nil
}

// NewStorageWithCustomComparator creates a new storage named name.
// Keys are ordered using the given custom comparator.
func NewStorageWithCustomComparator(name string, userKeyComparator Comparator, options *Options) (*Storage, error) {
	if userKeyComparator == nil {
		return nil, fmt.Errorf("nil comparator")
	}
	if options == nil {
		options = &Options{}
	}

	return &Storage{
		name:         name,
		options:      options,
		ukComparator: userKeyComparator,
		ikComparator: newInternalKeyComparator(userKeyComparator),
	}, nil
}

// NewStorage creates a new storage which orders keys byte wise.
func NewStorage(name string, options *Options) (*Storage, error) {
	return NewStorageWithCustomComparator(name, DefaultComparator, options)
}
