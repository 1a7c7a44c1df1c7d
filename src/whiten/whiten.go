// Package whiten post-processes raw samples with the SHAKE-256 extendable
// output function. The whole input is absorbed as one message; there is no
// key or nonce.
package whiten

import "golang.org/x/crypto/sha3"

// Shake256 returns len(raw) bytes of SHAKE-256 output over raw. Empty input
// yields an empty, non-nil slice. raw is never modified.
func Shake256(raw []byte) []byte {
	return Expand(raw, len(raw))
}

// Expand returns the first n bytes of SHAKE-256 output over raw.
// A non-positive n yields an empty slice.
func Expand(raw []byte, n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, n)
	sha3.ShakeSum256(out, raw)
	return out
}

// Transform is a named whitening pass.
type Transform interface {
	Name() string
	Apply(raw []byte) []byte
}

// Shake is the SHAKE-256 Transform. Length 0 means "same length as the input".
type Shake struct {
	Length int
}

func (Shake) Name() string { return "SHAKE-256" }

func (s Shake) Apply(raw []byte) []byte {
	if s.Length > 0 {
		return Expand(raw, s.Length)
	}
	return Shake256(raw)
}
