package repository

// Option applies a configuration option to the MapStore.
type Option func(*MapStore)

// WithShardCount sets the number of shards backing the store.
func WithShardCount(count int) Option {
	return func(s *MapStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}
