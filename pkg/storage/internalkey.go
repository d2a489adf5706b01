package storage

import (
	"encoding/binary"
)

// internalKeyTrailerSize is the size of the suffix appended to every user key.
const internalKeyTrailerSize = 8

// maxSequenceNumber is the largest sequence number that fits into the trailer.
const maxSequenceNumber = uint64(1)<<56 - 1

// internalKey is the key used for the memtable.
//
// It consists of the user key along with a 8-byte little endian suffix.
// The 8 byte suffix consists of:
//   - 1 byte segment defining the kind of operation: delete or set
//   - 7 bytes segment defining the sequence number.
type internalKey []byte

type internalKeyKind uint8

const (
	internalKeyKindDelete internalKeyKind = 0
	internalKeyKindSet    internalKeyKind = 1

	// internalKeyKindSeek sorts before every other kind with the same sequence number.
	internalKeyKindSeek = internalKeyKindSet
)

// newInternalKey generates an internalKey from a userKey, kind and a sequence number.
func newInternalKey(userKey []byte, kind internalKeyKind, sequenceNumber uint64) internalKey {
	ikey := make([]byte, len(userKey)+internalKeyTrailerSize)
	copy(ikey, userKey)
	binary.LittleEndian.PutUint64(ikey[len(userKey):], sequenceNumber<<8|uint64(kind))
	return ikey
}

// userKey extracts the user key from the internal key.
// the returned slice shares the internal key's memory.
func (ik internalKey) userKey() []byte {
	return ik[:len(ik)-internalKeyTrailerSize]
}

func (ik internalKey) trailer() uint64 {
	return binary.LittleEndian.Uint64(ik[len(ik)-internalKeyTrailerSize:])
}

// kind extracts the key kind from an internal key.
func (ik internalKey) kind() internalKeyKind {
	return internalKeyKind(ik.trailer() & 0xff)
}

// sequenceNumber returns the sequence number of the internal key.
func (ik internalKey) sequenceNumber() uint64 {
	return ik.trailer() >> 8
}

// valid returns if the internal key is valid structurally.
func (ik internalKey) valid() bool {
	return len(ik) >= internalKeyTrailerSize && ik.kind() <= internalKeyKindSet
}

// internalKeyComparator is the comparator which uses a user key comparator to compare internal key.
//
// keys are first compared for their user key according to the user key comparator.
// ties are broken by comparing sequence number (decreasing) and then by kind (decreasing).
type internalKeyComparator struct {
	userKeyComparator Comparator
}

var _ Comparator = (*internalKeyComparator)(nil)

func (d *internalKeyComparator) Compare(a, b []byte) int {
	ak, bk := internalKey(a), internalKey(b)
	if r := d.userKeyComparator.Compare(ak.userKey(), bk.userKey()); r != 0 {
		return r
	}

	at, bt := ak.trailer(), bk.trailer()
	if at > bt {
		return -1
	} else if at < bt {
		return 1
	}
	return 0
}

func (d *internalKeyComparator) Name() string {
	return "InternalKeyComparator(" + d.userKeyComparator.Name() + ")"
}

// newInternalKeyComparator creates a new instance of an internalKeyComparator
func newInternalKeyComparator(userKeyComparator Comparator) *internalKeyComparator {
	return &internalKeyComparator{
		userKeyComparator: userKeyComparator,
	}
}
