package metrics

import "runtime"

// MemorySnapshot holds a point-in-time runtime memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of live heap objects
	HeapSys      uint64 // bytes obtained from the OS for the heap
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics for the verbose report
// footer.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// MatrixShare returns the fraction of the live heap taken by matrixBytes,
// capped at 1. It is 0 when the heap size is unknown.
func (s MemorySnapshot) MatrixShare(matrixBytes uint64) float64 {
	if s.HeapAlloc == 0 {
		return 0
	}
	return min(float64(matrixBytes)/float64(s.HeapAlloc), 1)
}
