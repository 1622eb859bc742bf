package behaviortree

import "sync"

// Blackboard is a ready-made shared context for trees whose callbacks need
// to be inspected from another goroutine. It is safe for concurrent use; the
// engine itself never touches it.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{
		data: make(map[string]any),
	}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Lookup is Get with an existence flag.
func (b *Blackboard) Lookup(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// Set stores a value by key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}

// Delete removes a key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Update applies fn to the current value of key under the write lock and
// stores the result, so read-modify-write sequences are atomic.
func (b *Blackboard) Update(key string, fn func(old any) any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = fn(b.data[key])
}

func (b *Blackboard) GetInt(key string) (int, bool) {
	i, ok := b.Get(key).(int)
	return i, ok
}

func (b *Blackboard) GetFloat64(key string) (float64, bool) {
	f, ok := b.Get(key).(float64)
	return f, ok
}

func (b *Blackboard) GetBool(key string) (bool, bool) {
	v, ok := b.Get(key).(bool)
	return v, ok
}

func (b *Blackboard) GetString(key string) (string, bool) {
	s, ok := b.Get(key).(string)
	return s, ok
}

// Snapshot returns a copy of all data. Modifying it does not affect b.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make(map[string]any, len(b.data))
	for k, v := range b.data {
		snapshot[k] = v
	}
	return snapshot
}

// Restore replaces all data with a copy of data.
func (b *Blackboard) Restore(data map[string]any) {
	fresh := make(map[string]any, len(data))
	for k, v := range data {
		fresh[k] = v
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = fresh
}
