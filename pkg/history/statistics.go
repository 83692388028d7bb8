package history

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks tracker activity. Counters may be read from any
// goroutine while the owning Tracker is in use.
type Statistics struct {
	records   int64
	evictions int64
	undos     int64
	snapshots int64

	// Protected by mutex
	mu        sync.RWMutex
	startTime time.Time
	size      int64
	maxSize   int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Record counts one recorded value.
func (s *Statistics) Record() {
	atomic.AddInt64(&s.records, 1)
}

// Evict counts one evicted value.
func (s *Statistics) Evict() {
	atomic.AddInt64(&s.evictions, 1)
}

// Undo counts one undone value.
func (s *Statistics) Undo() {
	atomic.AddInt64(&s.undos, 1)
}

// Snapshot counts one snapshot taken.
func (s *Statistics) Snapshot() {
	atomic.AddInt64(&s.snapshots, 1)
}

// UpdateSize sets the number of retained values.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.size = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Records returns the total number of recorded values.
func (s *Statistics) Records() int64 {
	return atomic.LoadInt64(&s.records)
}

// Evictions returns the total number of evicted values.
func (s *Statistics) Evictions() int64 {
	return atomic.LoadInt64(&s.evictions)
}

// Undos returns the total number of undone values.
func (s *Statistics) Undos() int64 {
	return atomic.LoadInt64(&s.undos)
}

// Snapshots returns the total number of snapshots taken.
func (s *Statistics) Snapshots() int64 {
	return atomic.LoadInt64(&s.snapshots)
}

// Size returns the number of retained values.
func (s *Statistics) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// MaxSize returns the largest number of values retained at once.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// EvictionRate returns the fraction of records that pushed out an older
// value (0.0 to 1.0).
func (s *Statistics) EvictionRate() float64 {
	records := s.Records()
	if records == 0 {
		return 0.0
	}
	return float64(s.Evictions()) / float64(records)
}

// Uptime returns how long the statistics have been collected.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.records, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.undos, 0)
	atomic.StoreInt64(&s.snapshots, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.size = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a point in time copy of all statistics.
type StatsSummary struct {
	Records      int64         `json:"records"`
	Evictions    int64         `json:"evictions"`
	Undos        int64         `json:"undos"`
	Snapshots    int64         `json:"snapshots"`
	Size         int64         `json:"size"`
	MaxSize      int64         `json:"max_size"`
	EvictionRate float64       `json:"eviction_rate"`
	Uptime       time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Records:      s.Records(),
		Evictions:    s.Evictions(),
		Undos:        s.Undos(),
		Snapshots:    s.Snapshots(),
		Size:         s.Size(),
		MaxSize:      s.MaxSize(),
		EvictionRate: s.EvictionRate(),
		Uptime:       s.Uptime(),
	}
}
