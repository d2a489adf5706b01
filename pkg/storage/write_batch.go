package storage

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"
)

// header has 8 bytes of sequence number and 4 bytes for the count of records.
const batchHeaderSize = 12

// WriteBatch contains a number of Set/Delete records applied atomically.
// Refer to https://github.com/google/leveldb/blob/master/db/write_batch.cc for format.
type WriteBatch struct {
	data []byte
}

// init initializes a write batch with size headerSize and capacity cap rounded to nearest power of 2.
func (wb *WriteBatch) init(cap int) {
	icap := 256
	for icap < cap {
		icap *= 2
	}
	wb.data = make([]byte, batchHeaderSize, icap)
}

// Set adds a value for the given key in the write batch.
func (wb *WriteBatch) Set(key, value []byte) {
	log.WithFields(log.Fields{"key": string(key)}).Debug("storage::write_batch: Set; start")
	if len(wb.data) == 0 {
		wb.init(len(key) + len(value) + 2*binary.MaxVarintLen64 + batchHeaderSize)
	}

	wb.incrementCount()
	wb.data = append(wb.data, byte(internalKeyKindSet))
	wb.appendStr(key)
	wb.appendStr(value)
}

// Delete adds a delete entry for the given key in the write batch.
func (wb *WriteBatch) Delete(key []byte) {
	log.WithFields(log.Fields{"key": string(key)}).Debug("storage::write_batch: Delete; start")
	if len(wb.data) == 0 {
		wb.init(len(key) + binary.MaxVarintLen64 + batchHeaderSize)
	}

	wb.incrementCount()
	wb.data = append(wb.data, byte(internalKeyKindDelete))
	wb.appendStr(key)
}

// Count returns the number of records in the batch.
func (wb *WriteBatch) Count() uint32 {
	if len(wb.data) == 0 {
		return 0
	}
	return binary.LittleEndian.Uint32(wb.getCountData())
}

// Reset empties the batch so that it can be reused.
func (wb *WriteBatch) Reset() {
	wb.data = wb.data[:0]
}

func (wb *WriteBatch) getSeqNumData() []byte {
	return wb.data[:8]
}

func (wb *WriteBatch) getCountData() []byte {
	return wb.data[8:12]
}

func (wb *WriteBatch) incrementCount() {
	d := wb.getCountData()
	binary.LittleEndian.PutUint32(d, binary.LittleEndian.Uint32(d)+1)
}

func (wb *WriteBatch) appendStr(s []byte) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(s)))
	wb.data = append(wb.data, buf[:n]...)
	wb.data = append(wb.data, s...)
}

func (wb *WriteBatch) setSeqNum(seqNum uint64) {
	binary.LittleEndian.PutUint64(wb.getSeqNumData(), seqNum)
}

func (wb *WriteBatch) getSeqNum() uint64 {
	return binary.LittleEndian.Uint64(wb.getSeqNumData())
}

func (wb *WriteBatch) getIterator() batchIterator {
	return wb.data[batchHeaderSize:]
}

type batchIterator []byte

// next decodes the next record of the batch.
// ok is false once the batch is exhausted or found corrupt.
func (bi *batchIterator) next() (kind internalKeyKind, ukey []byte, value []byte, ok bool) {
	tmp := *bi
	if len(tmp) == 0 {
		return 0, nil, nil, false
	}

	kind, *bi = internalKeyKind(tmp[0]), tmp[1:]
	if kind > internalKeyKindSet {
		log.WithFields(log.Fields{"kind": kind}).Error("storage::write_batch: next; invalid record kind")
		return 0, nil, nil, false
	}

	ukey, ok = bi.nextString()
	if !ok {
		log.Error("storage::write_batch: next; ukey for internal key not found.")
		return 0, nil, nil, ok
	}

	if kind != internalKeyKindDelete {
		value, ok = bi.nextString()
		if !ok {
			log.Error("storage::write_batch: next; value for internal key set not found.")
			return 0, nil, nil, ok
		}
	}

	return kind, ukey, value, true
}

// nextString gets the next string from the batch.
// it reads the length of the string stored as varint and then reads the actual string
func (bi *batchIterator) nextString() (s []byte, ok bool) {
	tmp := *bi

	// u is the length of the string.
	u, numBytes := binary.Uvarint(tmp)
	if numBytes <= 0 {
		log.Error("storage::write_batch: nextString; corrupt value of length of the string.")
		return nil, false
	}

	tmp = tmp[numBytes:]
	if u > uint64(len(tmp)) {
		log.Error("storage::write_batch: nextString; corrupt value of length of string. u is greater than the length of the buffer.")
		return nil, false
	}

	s, *bi = tmp[:u], tmp[u:]
	return s, true
}
