package storage

// Snapshot denotes a read-only view of the storage as of a sequence number.
type Snapshot struct {
	SeqNum uint64
}

// SeqNumber returns the seq number of the snapshot
func (s *Snapshot) SeqNumber() uint64 {
	return s.SeqNum
}
