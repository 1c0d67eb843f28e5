package memory

import (
	"hash/fnv"
	"sync"
)

const shardCount = 16

// shard is one lock-and-map unit of a sharded store. Keys for different
// shards never contend, so unrelated users' operations are not serialized.
type shard[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

type shardedMap[V any] struct {
	shards [shardCount]shard[V]
}

func newShardedMap[V any]() *shardedMap[V] {
	s := &shardedMap[V]{}
	for i := range s.shards {
		s.shards[i].m = make(map[string]V)
	}
	return s
}

func (s *shardedMap[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &s.shards[h.Sum32()%shardCount]
}
