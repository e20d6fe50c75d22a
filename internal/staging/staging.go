// Package staging holds user-selected files in memory until they are
// processed or removed. Nothing survives a restart and nothing is
// deduplicated; the only rule enforced is the per-file size ceiling.
package staging

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexrelay/lexrelay/internal/metrics"
)

var (
	ErrTooLarge = errors.New("file exceeds size limit")
	ErrNotFound = errors.New("staged file not found")
)

// File is one staged upload, content included.
type File struct {
	ID       string
	Name     string
	Size     int64
	StagedAt time.Time
	Content  []byte

	// seq preserves insertion order; StagedAt alone is too coarse
	seq uint64
}

// Area is an injected, mutex-guarded staging list. It replaces what the
// browser UI used to keep in a page-global variable so upload handling can be
// tested on its own.
type Area struct {
	mu       sync.Mutex
	maxBytes int64
	nextSeq  uint64
	files    map[string]*File
}

func NewArea(maxBytes int64) *Area {
	return &Area{
		maxBytes: maxBytes,
		files:    make(map[string]*File),
	}
}

// Add stages a file. Files over the size ceiling are rejected outright, not
// queued or truncated. size is the declared size; the read is capped at it.
func (a *Area) Add(name string, size int64, r io.Reader) (*File, error) {
	if size > a.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, name, size, a.maxBytes)
	}

	content, err := io.ReadAll(io.LimitReader(r, a.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if int64(len(content)) > a.maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than its declared size (limit %d)", ErrTooLarge, name, a.maxBytes)
	}

	f := &File{
		ID:       uuid.NewString(),
		Name:     name,
		Size:     int64(len(content)),
		StagedAt: time.Now().UTC(),
		Content:  content,
	}

	a.mu.Lock()
	f.seq = a.nextSeq
	a.nextSeq++
	a.files[f.ID] = f
	a.mu.Unlock()

	metrics.StagedBytes.Add(float64(f.Size))
	return f, nil
}

func (a *Area) Get(id string) (*File, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, ok := a.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return f, nil
}

func (a *Area) Remove(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.files[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(a.files, id)
	return nil
}

// List returns staged files ordered by staging time.
func (a *Area) List() []*File {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*File, 0, len(a.files))
	for _, f := range a.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq < out[j].seq
	})
	return out
}
