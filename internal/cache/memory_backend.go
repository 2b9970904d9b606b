package cache

import (
	"context"
	"sync"
)

// MemoryBackend keeps encoded entries in a map. Nothing survives the process.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, fn func(key string, raw []byte)) error {
	b.mu.Lock()
	snapshot := make(map[string][]byte, len(b.data))
	for k, v := range b.data {
		snapshot[k] = v
	}
	b.mu.Unlock()

	for k, v := range snapshot {
		fn(k, v)
	}
	return nil
}

func (b *MemoryBackend) Save(_ context.Context, key string, raw []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), raw...)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Raw returns the encoded bytes stored under key.
func (b *MemoryBackend) Raw(key string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	return v, ok
}

func (b *MemoryBackend) Close() error {
	return nil
}
