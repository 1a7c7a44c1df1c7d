package whiten_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lost-woods/rngaudit/src/whiten"
)

func seq(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func TestShake256_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"counting", seq(10), "1296720bfaac8504e84d"},
		{"zeros", make([]byte, 16), "d570b23c455f4f43c4bf34aa6f2b7628"},
	}

	for _, tc := range tests {
		got := whiten.Shake256(tc.in)
		if hex.EncodeToString(got) != tc.want {
			t.Fatalf("%s: got %x want %s", tc.name, got, tc.want)
		}
	}
}

func TestShake256_Empty(t *testing.T) {
	got := whiten.Shake256(nil)
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestShake256_DeterministicAndSameLength(t *testing.T) {
	for _, n := range []int{1, 2, 31, 136, 137, 1000} {
		in := seq(n)
		a := whiten.Shake256(in)
		b := whiten.Shake256(in)
		require.Len(t, a, n)
		require.True(t, bytes.Equal(a, b), "n=%d output diverged", n)
	}
}

func TestShake256_DoesNotMutateInput(t *testing.T) {
	in := seq(64)
	orig := append([]byte(nil), in...)
	_ = whiten.Shake256(in)
	assert.Equal(t, orig, in)
}

func TestShake256_SensitiveToOrderAndAppend(t *testing.T) {
	base := []byte{1, 2, 3, 4}
	swapped := []byte{2, 1, 3, 4}
	appended := []byte{1, 2, 3, 4, 5}

	assert.NotEqual(t, whiten.Shake256(base), whiten.Shake256(swapped))
	assert.NotEqual(t, whiten.Shake256(base), whiten.Shake256(appended)[:4])
}

func TestExpand_CallerChosenLength(t *testing.T) {
	long := whiten.Expand(seq(10), 20)
	assert.Equal(t, "1296720bfaac8504e84d1c97f33b578634953286", hex.EncodeToString(long))
	assert.Equal(t, whiten.Shake256(seq(10)), long[:10])
	assert.Len(t, whiten.Expand(seq(10), 0), 0)
	assert.Len(t, whiten.Expand(seq(10), -3), 0)
}

func TestShake_Transform(t *testing.T) {
	var tr whiten.Transform = whiten.Shake{}
	assert.Equal(t, "SHAKE-256", tr.Name())
	assert.Len(t, tr.Apply(seq(7)), 7)
	assert.Len(t, whiten.Shake{Length: 32}.Apply(seq(7)), 32)
}
