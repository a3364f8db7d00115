// Package score keeps per-game best results in a key-value store.
//
// A game's record is either a single best value (Tracker) or a small ranked
// list (Ranked). Stored records never get worse: a submission is persisted
// only when it improves on what is already there.
package score

import "sync"

// KV is the persistent key-to-string mapping score records live in.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Keys used for persisted records.
const (
	Key2048    = "2048BestScore"
	KeyFlappy  = "flappyBestScore"
	KeySnake   = "snakeBestScore"
	KeyReflex  = "reflexBestScore"
	KeyMemory  = "memoryScores"
	KeyProfile = "miniplayPlayerData"
)

// MemoryKV is an in-process KV used when no database is available.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
