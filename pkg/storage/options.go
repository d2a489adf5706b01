package storage

// Options defines all of the configuration options available with the storage layer.
type Options struct {
	// ComparatorName, if set, must match the Name() of the comparator the storage is
	// created with. It guards an index against being read with a different key order.
	ComparatorName string

	// MaxLevel of the memtable skip list.
	// set to zero for defaultMaxLevel.
	MaxLevel int32
}

// ReadOptions control a single read.
type ReadOptions struct {
	// Snapshot to read at. nil reads the latest state.
	Snapshot *Snapshot
}
