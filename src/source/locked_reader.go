package source

import (
	"io"
	"sync"
)

// LockedReader shares one device between captures and the background health
// check. Every Read, and every WithLock block, holds the device exclusively.
type LockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// NewLockedReader wraps r. An existing *LockedReader is returned unchanged so
// wrapping twice never splits the lock.
func NewLockedReader(r io.Reader) *LockedReader {
	switch v := r.(type) {
	case nil:
		return nil
	case *LockedReader:
		return v
	}
	return &LockedReader{r: r}
}

func (lr *LockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}

// WithLock runs fn against the underlying reader while holding the lock.
func (lr *LockedReader) WithLock(fn func(r io.Reader) error) error {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return fn(lr.r)
}

// ReadFull fills p without letting another reader interleave.
func (lr *LockedReader) ReadFull(p []byte) (n int, err error) {
	err = lr.WithLock(func(r io.Reader) error {
		n, err = io.ReadFull(r, p)
		return err
	})
	return n, err
}
