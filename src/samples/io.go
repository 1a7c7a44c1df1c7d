package samples

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoSamples is returned by Load when the source held no valid sample.
var ErrNoSamples = errors.New("no valid samples found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadStats describes what the loader accepted and skipped.
type LoadStats struct {
	Lines       int
	Accepted    int
	Skipped     int
	ZeroDropped int
}

// Parse reads newline-delimited decimal integers. Lines that are not plain
// digit strings in [0,255] are skipped. A leading byte-order mark is ignored.
func Parse(r io.Reader, opts Options) (*Set, LoadStats, error) {
	var stats LoadStats
	values := make([]byte, 0, 4096)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Bytes()
		if first {
			line = bytes.TrimPrefix(line, utf8BOM)
			first = false
		}
		stats.Lines++

		v, ok := parseSample(strings.TrimSpace(string(line)))
		if !ok {
			stats.Skipped++
			continue
		}
		if opts.IgnoreZero && v == 0 {
			stats.ZeroDropped++
			continue
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read samples: %w", err)
	}

	stats.Accepted = len(values)
	return &Set{values: values, opts: opts, bits: BitsOf(values)}, stats, nil
}

func parseSample(tok string) (byte, bool) {
	if tok == "" {
		return 0, false
	}
	for _, ch := range tok {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n > 255 {
		return 0, false
	}
	return byte(n), true
}

// Load opens path and parses it. It returns ErrNoSamples (with the stats)
// when the file contained nothing usable.
func Load(path string, opts Options) (*Set, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	set, stats, err := Parse(f, opts)
	if err != nil {
		return nil, stats, err
	}
	if set.Len() == 0 {
		return set, stats, ErrNoSamples
	}
	return set, stats, nil
}

// Write emits one decimal integer per line in the original order.
func Write(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 4)
	for _, v := range data {
		buf = strconv.AppendUint(buf[:0], uint64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes data to path, replacing any existing file.
func Save(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
