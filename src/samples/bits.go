package samples

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitString is a packed, read-only bit sequence. Bit 0 is the most
// significant bit of the first byte.
type BitString struct {
	packed []byte
	n      int
}

// BitsOf expands each byte into its 8-bit big-endian representation.
func BitsOf(data []byte) BitString {
	packed := make([]byte, len(data))
	copy(packed, data)
	return BitString{packed: packed, n: len(data) * 8}
}

// ParseBits reads a string of '0' and '1' characters.
func ParseBits(s string) (BitString, error) {
	packed := make([]byte, (len(s)+7)/8)
	for i, ch := range s {
		switch ch {
		case '0':
		case '1':
			packed[i/8] |= 1 << (7 - uint(i%8))
		default:
			return BitString{}, fmt.Errorf("invalid bit %q at offset %d", ch, i)
		}
	}
	return BitString{packed: packed, n: len(s)}, nil
}

// MustParseBits is ParseBits for literals known to be valid.
func MustParseBits(s string) BitString {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BitString) Len() int { return b.n }

// At returns bit i as 0 or 1.
func (b BitString) At(i int) byte {
	return (b.packed[i/8] >> (7 - uint(i%8))) & 1
}

// Ones counts the set bits.
func (b BitString) Ones() int {
	full := b.n / 8
	ones := 0
	for _, v := range b.packed[:full] {
		ones += bits.OnesCount8(v)
	}
	for i := full * 8; i < b.n; i++ {
		ones += int(b.At(i))
	}
	return ones
}

// Zeros counts the clear bits.
func (b BitString) Zeros() int { return b.n - b.Ones() }

// Transitions counts adjacent positions whose bits differ.
func (b BitString) Transitions() int {
	if b.n < 2 {
		return 0
	}
	count := 0
	prev := b.At(0)
	for i := 1; i < b.n; i++ {
		cur := b.At(i)
		if cur != prev {
			count++
		}
		prev = cur
	}
	return count
}

func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.At(i))
	}
	return sb.String()
}
