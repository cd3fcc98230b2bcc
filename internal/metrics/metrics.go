package metrics

import (
	"sync"
	"time"
)

type tabStats struct {
	calls           int
	errors          int
	fallbacks       int
	lastCallLatency time.Duration
}

type datasetStats struct {
	cacheHits     int
	cacheMisses   int
	locatorMisses int
}

// Recorder captures lightweight, in-memory metrics about sheet fetches and cache use.
// When built through Setup it also forwards to OpenTelemetry instruments.
type Recorder struct {
	mu       sync.Mutex
	tabs     map[string]*tabStats
	datasets map[string]*datasetStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		tabs:     make(map[string]*tabStats),
		datasets: make(map[string]*datasetStats),
		otel:     otel,
	}
}

// RecordSheetFetch counts a tab fetch and stores the last observed latency.
func (r *Recorder) RecordSheetFetch(tab string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.tabStatsLocked(tab)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSheetFetch(tab, duration, err)
	}
}

// RecordFallback tracks that a tab was served by the backup export endpoint.
func (r *Recorder) RecordFallback(tab string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.tabStatsLocked(tab).fallbacks++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFallback(tab)
	}
}

// RecordCacheLookup tracks a cache hit or miss for a dataset (players, teams).
func (r *Recorder) RecordCacheLookup(dataset string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.datasetStatsLocked(dataset)
	if hit {
		stats.cacheHits++
	} else {
		stats.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(dataset, hit)
	}
}

// RecordLocatorMiss tracks that no candidate tab satisfied a dataset's column contract.
func (r *Recorder) RecordLocatorMiss(dataset string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.datasetStatsLocked(dataset).locatorMisses++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLocatorMiss(dataset)
	}
}

// TabSnapshot is a copy of the fetch stats for one tab.
type TabSnapshot struct {
	Calls           int
	Errors          int
	Fallbacks       int
	LastCallLatency time.Duration
}

// DatasetSnapshot is a copy of the cache and locator stats for one dataset.
type DatasetSnapshot struct {
	CacheHits     int
	CacheMisses   int
	LocatorMisses int
}

// Tab returns a copy of the current stats for the tab.
func (r *Recorder) Tab(tab string) TabSnapshot {
	if r == nil {
		return TabSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.tabs[tab]
	if !ok || stats == nil {
		return TabSnapshot{}
	}
	return TabSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Fallbacks:       stats.fallbacks,
		LastCallLatency: stats.lastCallLatency,
	}
}

// Dataset returns a copy of the current stats for the dataset.
func (r *Recorder) Dataset(dataset string) DatasetSnapshot {
	if r == nil {
		return DatasetSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.datasets[dataset]
	if !ok || stats == nil {
		return DatasetSnapshot{}
	}
	return DatasetSnapshot{
		CacheHits:     stats.cacheHits,
		CacheMisses:   stats.cacheMisses,
		LocatorMisses: stats.locatorMisses,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) tabStatsLocked(tab string) *tabStats {
	stats, ok := r.tabs[tab]
	if !ok {
		stats = &tabStats{}
		r.tabs[tab] = stats
	}
	return stats
}

func (r *Recorder) datasetStatsLocked(dataset string) *datasetStats {
	stats, ok := r.datasets[dataset]
	if !ok {
		stats = &datasetStats{}
		r.datasets[dataset] = stats
	}
	return stats
}
