package vbyte

import (
	"fmt"
	"strings"
)

// Stats counts the work a Decoder did. The counters make the kernel paths
// observable: a stream of one-byte varints decodes with every batch on the
// fast path and no compaction.
type Stats struct {
	// Calls is the number of Decode calls.
	Calls int64
	// Bytes and Values are the totals consumed and produced.
	Bytes  int64
	Values int64
	// Batches is the number of full batches loaded.
	Batches int64
	// FastPathBatches is the number of batches without continuation bits,
	// widened without compaction.
	FastPathBatches int64
	// Compactions is the number of compress steps run by the mask/shift
	// kernel, the terminator seed included.
	Compactions int64
	// TableLookups is the number of groups decoded through the masked vbyte
	// shuffle table.
	TableLookups int64
	// TailBytes and TailValues cover the scalar remainder of each call.
	TailBytes  int64
	TailValues int64
}

// The add methods accept a nil receiver so kernels can be run without
// collecting stats.

func (s *Stats) addBatch() {
	if s != nil {
		s.Batches++
	}
}

func (s *Stats) addFastPath() {
	if s != nil {
		s.FastPathBatches++
	}
}

func (s *Stats) addCompactions(n int) {
	if s != nil {
		s.Compactions += int64(n)
	}
}

func (s *Stats) addTableLookup() {
	if s != nil {
		s.TableLookups++
	}
}

func (s *Stats) addTail(bytes, values int) {
	if s != nil {
		s.TailBytes += int64(bytes)
		s.TailValues += int64(values)
	}
}

func (s *Stats) addCall(bytes, values int) {
	if s != nil {
		s.Calls++
		s.Bytes += int64(bytes)
		s.Values += int64(values)
	}
}

// String returns a short multi-line summary.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "calls: %d, bytes: %d, values: %d\n", s.Calls, s.Bytes, s.Values)
	fmt.Fprintf(&b, "batches: %d (fast path %d)\n", s.Batches, s.FastPathBatches)
	fmt.Fprintf(&b, "compactions: %d, table lookups: %d\n", s.Compactions, s.TableLookups)
	fmt.Fprintf(&b, "tail: %d bytes, %d values", s.TailBytes, s.TailValues)
	return b.String()
}
