package battery_test

import (
	"testing"

	"github.com/lost-woods/rngaudit/src/whiten"
)

func shakeOfNibbles(t *testing.T) []byte {
	t.Helper()
	out := whiten.Shake256(nibbles())
	if out[0] != 176 || out[1] != 177 || out[2] != 224 {
		t.Fatalf("unexpected whitened prefix % d", out[:3])
	}
	return out
}
