package samples

import "math"

// Options carries the loader configuration that also shifts the statistical
// baselines used by the battery.
type Options struct {
	// IgnoreZero drops zero-valued samples at load time. The alphabet then
	// shrinks to 255 symbols (1..255).
	IgnoreZero bool
}

// ExpectedMean is the ideal midpoint of the alphabet.
func (o Options) ExpectedMean() float64 {
	if o.IgnoreZero {
		return 128.0
	}
	return 127.5
}

// MaxEntropy is the entropy in bits/symbol of a uniform source over the alphabet.
func (o Options) MaxEntropy() float64 {
	if o.IgnoreZero {
		return math.Log2(255)
	}
	return 8.0
}

// AlphabetStart is the smallest symbol of the alphabet.
func (o Options) AlphabetStart() int {
	if o.IgnoreZero {
		return 1
	}
	return 0
}

// AlphabetSize is the number of symbols a uniform source would use.
func (o Options) AlphabetSize() int {
	return 256 - o.AlphabetStart()
}

// Set is an immutable, ordered sequence of byte samples.
type Set struct {
	values []byte
	opts   Options
	bits   BitString
}

// New copies values into a Set. When opts.IgnoreZero is set zero samples are
// dropped, mirroring what the loader does.
func New(values []byte, opts Options) *Set {
	kept := make([]byte, 0, len(values))
	for _, v := range values {
		if opts.IgnoreZero && v == 0 {
			continue
		}
		kept = append(kept, v)
	}
	return &Set{values: kept, opts: opts, bits: BitsOf(kept)}
}

// FromInts builds a Set from integers already known to lie in [0,255].
// Values outside that range are skipped.
func FromInts(values []int, opts Options) *Set {
	buf := make([]byte, 0, len(values))
	for _, v := range values {
		if v < 0 || v > 255 {
			continue
		}
		buf = append(buf, byte(v))
	}
	return New(buf, opts)
}

func (s *Set) Len() int { return len(s.values) }

func (s *Set) Options() Options { return s.opts }

// At returns the i-th sample.
func (s *Set) At(i int) byte { return s.values[i] }

// Bytes returns a copy of the samples.
func (s *Set) Bytes() []byte {
	out := make([]byte, len(s.values))
	copy(out, s.values)
	return out
}

// Floats returns the samples as float64 values.
func (s *Set) Floats() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = float64(v)
	}
	return out
}

// Histogram counts every symbol of the full byte range. Absent values count zero.
func (s *Set) Histogram() [256]int {
	var h [256]int
	for _, v := range s.values {
		h[v]++
	}
	return h
}

// Bits is the big-endian bit expansion of the samples.
func (s *Set) Bits() BitString { return s.bits }
