// Package source reads raw samples from a hardware RNG attached over a
// serial line and keeps track of whether that device looks healthy.
package source

import (
	"fmt"
	"io"

	"github.com/lost-woods/rngaudit/src/samples"
)

type fullReader interface {
	ReadFull(p []byte) (int, error)
}

// Capture reads exactly n bytes from r into a sample set. A *LockedReader
// holds its lock for the whole capture.
func Capture(r io.Reader, n int, opts samples.Options) (*samples.Set, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid capture size: %d", n)
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return nil, fmt.Errorf("capture %d bytes: %w", n, err)
	}
	return samples.New(buf, opts), nil
}

func readFull(r io.Reader, buf []byte) error {
	if fr, ok := r.(fullReader); ok {
		_, err := fr.ReadFull(buf)
		return err
	}
	_, err := io.ReadFull(r, buf)
	return err
}
