package flatfile

import (
	"io/fs"
	"sync"
	"time"
)

// recordCache keeps the parsed contents of one backing file, validated by
// the file's size and modification time. It is rebuilt lazily on the first
// read after going stale and replaced on every rewrite, so an external
// change to the file is picked up on the next read.
type recordCache[T any] struct {
	mu      sync.RWMutex
	valid   bool
	size    int64
	modTime time.Time
	records []T
}

// get returns the cached records if they are still fresh for info.
func (c *recordCache[T]) get(info fs.FileInfo) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || c.size != info.Size() || !c.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return c.records, true
}

// set replaces the cached records, keyed by info.
func (c *recordCache[T]) set(info fs.FileInfo, records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = true
	c.size = info.Size()
	c.modTime = info.ModTime()
	c.records = records
}

func (c *recordCache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
	c.records = nil
}
