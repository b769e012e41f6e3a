// Package flatfile implements line-oriented persistence for records that
// satisfy the core.Model contract: one file per entity kind, one record
// per non-empty line, fields joined with core.FieldSeparator, UTF-8, no
// header. Saves are full-file rewrites with upsert-by-identity semantics.
package flatfile

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/quackstagram/quackstore/pkg/core"
)

// Table binds one entity kind to its backing file.
//
// Save is a read-modify-rewrite guarded by a per-table mutex, so
// sequential calls within one process observe call order. Nothing guards
// against a second process writing the same file: the last full rewrite
// wins and silently discards the other writer's update. The design assumes
// a single-process owner per data directory.
type Table[T core.Model[T]] struct {
	path    string
	factory core.Factory[T]
	logger  *slog.Logger

	mu    sync.Mutex
	cache *recordCache[T]
}

// NewTable creates a table backed by the file at path, using factory to
// rebuild records from their serialized fields. A nil logger falls back to
// slog.Default().
func NewTable[T core.Model[T]](path string, factory core.Factory[T], logger *slog.Logger) *Table[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table[T]{
		path:    path,
		factory: factory,
		logger:  logger,
		cache:   &recordCache[T]{},
	}
}

// Path returns the backing file location.
func (t *Table[T]) Path() string { return t.path }

// ReadAll returns every record in file order; records saved through Save
// come back newest first. A missing backing file is an empty table, not an
// error, because first-run callers rely on that. A line that fails to
// parse aborts the whole read with a wrapped *core.ParseError.
func (t *Table[T]) ReadAll(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readLocked(ctx)
}

func (t *Table[T]) readLocked(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(t.path)
	if os.IsNotExist(err) {
		t.logger.Debug("backing file missing, treating as empty", "path", t.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", t.path, err)
	}

	if cached, ok := t.cache.get(info); ok {
		return t.copyRecords(cached)
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
	}

	var records []T
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		record, err := t.factory(strings.Split(line, core.FieldSeparator))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", t.path, i+1, err)
		}
		records = append(records, record)
	}

	t.cache.set(info, records)
	return t.copyRecords(records)
}

// copyRecords hands out fresh instances so callers can mutate results
// without poisoning the cache. The Model contract guarantees the
// serialize-then-parse round trip.
func (t *Table[T]) copyRecords(records []T) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, record := range records {
		fresh, err := t.factory(record.Serialize())
		if err != nil {
			return nil, fmt.Errorf("%s: record does not round-trip: %w", t.path, err)
		}
		out = append(out, fresh)
	}
	return out, nil
}

// Save upserts a record and rewrites the whole backing file.
//
// Updatable records replace the existing record with the same identity in
// place; a record never seen before goes to the head of the file, so reads
// come back newest first. Non-updatable records are always prepended,
// duplicates included. Write failures propagate to the caller.
func (t *Table[T]) Save(ctx context.Context, object T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.readLocked(ctx)
	if err != nil {
		return err
	}

	if object.IsUpdatable() {
		found := false
		for i, existing := range records {
			if object.IsIDEqualTo(existing) {
				records[i] = object
				found = true
			}
		}
		if !found {
			records = append([]T{object}, records...)
		}
	} else {
		records = append([]T{object}, records...)
	}

	return t.writeLocked(records)
}

// WriteAll replaces the entire table contents with records, in the given
// order.
func (t *Table[T]) WriteAll(ctx context.Context, records []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return t.writeLocked(records)
}

func (t *Table[T]) writeLocked(records []T) error {
	var buf bytes.Buffer
	for _, record := range records {
		buf.WriteString(strings.Join(record.Serialize(), core.FieldSeparator))
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := WriteFileAtomic(t.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.path, err)
	}

	if info, err := os.Stat(t.path); err == nil {
		if copied, err := t.copyRecords(records); err == nil {
			t.cache.set(info, copied)
		} else {
			t.cache.invalidate()
		}
	} else {
		t.cache.invalidate()
	}

	t.logger.Debug("table rewritten", "path", t.path, "records", len(records))
	return nil
}

// Find returns the first record matching pred, in file order, or
// core.ErrNotFound.
func (t *Table[T]) Find(ctx context.Context, pred func(T) bool) (T, error) {
	var zero T

	records, err := t.ReadAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, record := range records {
		if pred(record) {
			return record, nil
		}
	}
	return zero, core.ErrNotFound
}

// Filter returns every record matching pred, preserving file order.
func (t *Table[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := t.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if pred(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}
