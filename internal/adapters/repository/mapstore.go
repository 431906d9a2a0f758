package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"

	"github.com/okian/festa/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 16
)

type record struct {
	name      string
	label     string
	percent   float64
	aggregate float64
}

type shard struct {
	mu      sync.RWMutex
	records map[string]record
}

// MapStore implements Store with a sharded map. Writes touch a single
// shard; listings snapshot all shards and sort on demand. The candidate
// sets this serves stay small enough that sort-on-read beats keeping an
// ordered structure coherent under concurrent upserts.
type MapStore struct {
	shards     []*shard
	shardCount int
}

// NewMapStore creates a sharded in-memory verdict store.
func NewMapStore(opts ...Option) *MapStore {
	s := &MapStore{
		shardCount: defaultShardCount,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]record)}
	}

	metrics.UpdateStoreCandidates(0)

	return s
}

func (s *MapStore) shardFor(name string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// Upsert records or replaces the verdict for an event.
func (s *MapStore) Upsert(ctx context.Context, name string, label string, percent, aggregate float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: missing event name", ErrInvalidEntry)
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: percent %.2f out of range", ErrInvalidEntry, percent)
	}

	sh := s.shardFor(name)
	sh.mu.Lock()
	sh.records[name] = record{name: name, label: label, percent: percent, aggregate: aggregate}
	sh.mu.Unlock()

	metrics.RecordStoreUpsert()
	metrics.UpdateStoreCandidates(s.Count(ctx))

	return nil
}

// Rank returns the current rank and verdict for an event.
func (s *MapStore) Rank(_ context.Context, name string) (Entry, error) {
	sh := s.shardFor(name)
	sh.mu.RLock()
	rec, ok := sh.records[name]
	sh.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	// Rank is one plus the number of records ordered ahead of this one.
	rank := 1
	for _, other := range s.snapshot() {
		if other.name != rec.name && ahead(other, rec) {
			rank++
		}
	}

	return Entry{
		Rank:      rank,
		Name:      rec.name,
		Label:     rec.label,
		Percent:   rec.percent,
		Aggregate: rec.aggregate,
	}, nil
}

// TopN returns the top-N entries ordered by percent desc.
func (s *MapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	records := s.snapshot()
	sort.Slice(records, func(i, j int) bool {
		return ahead(records[i], records[j])
	})

	if n > len(records) {
		n = len(records)
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		rec := records[i]
		entries = append(entries, Entry{
			Rank:      i + 1,
			Name:      rec.name,
			Label:     rec.label,
			Percent:   rec.percent,
			Aggregate: rec.aggregate,
		})
	}

	return entries, nil
}

// Count returns the number of candidates tracked in the store.
func (s *MapStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.records)
		sh.mu.RUnlock()
	}
	return total
}

func (s *MapStore) snapshot() []record {
	records := make([]record, 0, 64)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, rec := range sh.records {
			records = append(records, rec)
		}
		sh.mu.RUnlock()
	}
	return records
}

// ahead reports whether a sorts before b: higher percent first, then
// higher aggregate, then name for a stable total order.
func ahead(a, b record) bool {
	if a.percent != b.percent {
		return a.percent > b.percent
	}
	if a.aggregate != b.aggregate {
		return a.aggregate > b.aggregate
	}
	return a.name < b.name
}
