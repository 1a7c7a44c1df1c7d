package samples_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/rngaudit/src/samples"
)

func TestOptions_Baselines(t *testing.T) {
	tests := []struct {
		opts       samples.Options
		mean       float64
		maxEntropy float64
		start      int
		size       int
	}{
		{samples.Options{}, 127.5, 8.0, 0, 256},
		{samples.Options{IgnoreZero: true}, 128.0, math.Log2(255), 1, 255},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.mean, tc.opts.ExpectedMean())
		assert.InDelta(t, tc.maxEntropy, tc.opts.MaxEntropy(), 1e-12)
		assert.Equal(t, tc.start, tc.opts.AlphabetStart())
		assert.Equal(t, tc.size, tc.opts.AlphabetSize())
	}
}

func TestNew_CopiesAndDropsZeros(t *testing.T) {
	raw := []byte{0, 1, 0, 2}
	set := samples.New(raw, samples.Options{IgnoreZero: true})
	raw[1] = 99

	require.Equal(t, 2, set.Len())
	assert.Equal(t, []byte{1, 2}, set.Bytes())
	assert.Equal(t, 16, set.Bits().Len())
}

func TestFromInts_SkipsOutOfRange(t *testing.T) {
	set := samples.FromInts([]int{-1, 0, 255, 256, 7}, samples.Options{})
	assert.Equal(t, []byte{0, 255, 7}, set.Bytes())
}

func TestHistogram_AbsentValuesAreZero(t *testing.T) {
	set := samples.New([]byte{5, 5, 200}, samples.Options{})
	h := set.Histogram()
	assert.Equal(t, 2, h[5])
	assert.Equal(t, 1, h[200])
	assert.Equal(t, 0, h[0])
	assert.Equal(t, 0, h[255])
}

func TestBitsOf_BigEndianExpansion(t *testing.T) {
	b := samples.BitsOf([]byte{0x80, 0x01})
	assert.Equal(t, "1000000000000001", b.String())
	assert.Equal(t, 2, b.Ones())
	assert.Equal(t, 14, b.Zeros())
	assert.Equal(t, 3, b.Transitions())
}

func TestParseBits(t *testing.T) {
	b, err := samples.ParseBits("01010101")
	require.NoError(t, err)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 4, b.Ones())
	assert.Equal(t, 7, b.Transitions())

	odd := samples.MustParseBits("111")
	assert.Equal(t, 3, odd.Len())
	assert.Equal(t, 3, odd.Ones())
	assert.Equal(t, "111", odd.String())

	_, err = samples.ParseBits("01x")
	assert.Error(t, err)
}

func TestEmptySet(t *testing.T) {
	set := samples.New(nil, samples.Options{})
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, set.Bits().Len())
	assert.Equal(t, 0, set.Bits().Transitions())
	assert.Empty(t, set.Floats())
}

func TestParse_SkipsInvalidLines(t *testing.T) {
	in := "\ufeff12\n  34 \nabc\n-1\n256\n\n0\n3.5\n255\n"
	set, stats, err := samples.Parse(strings.NewReader(in), samples.Options{})
	require.NoError(t, err)

	assert.Equal(t, []byte{12, 34, 0, 255}, set.Bytes())
	assert.Equal(t, 9, stats.Lines)
	assert.Equal(t, 4, stats.Accepted)
	assert.Equal(t, 5, stats.Skipped)
	assert.Equal(t, 0, stats.ZeroDropped)
}

func TestParse_IgnoreZero(t *testing.T) {
	set, stats, err := samples.Parse(strings.NewReader("0\n1\n0\n2\n"), samples.Options{IgnoreZero: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, set.Bytes())
	assert.Equal(t, 2, stats.ZeroDropped)
	assert.True(t, set.Options().IgnoreZero)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := samples.Load(filepath.Join(t.TempDir(), "nope.txt"), samples.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_NoValidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o644))

	set, stats, err := samples.Load(path, samples.Options{})
	assert.ErrorIs(t, err, samples.ErrNoSamples)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 2, stats.Skipped)
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	data := []byte{9, 0, 255, 17}
	require.NoError(t, samples.Save(path, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9\n0\n255\n17\n", string(raw))

	set, _, err := samples.Load(path, samples.Options{})
	require.NoError(t, err)
	assert.Equal(t, data, set.Bytes())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, samples.Write(&buf, nil))
	assert.Equal(t, 0, buf.Len())
}
