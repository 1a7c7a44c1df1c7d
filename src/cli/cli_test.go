package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lost-woods/rngaudit/src/cli"
	"github.com/lost-woods/rngaudit/src/config"
)

func writeSamples(t *testing.T, values func(i int) int, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d\n", values(i))
	}
	path := filepath.Join(t.TempDir(), "rng_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, cfg config.Config, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	log := zap.NewNop().Sugar()
	root := cli.NewRootCommand(cfg, log, &out)
	return cli.Execute(context.Background(), root, args, log), out.String()
}

func testConfig() config.Config {
	return config.Config{CaptureMax: 4096}
}

func TestAnalyze_NibblesFail(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i % 16 }, 1024)

	code, out := run(t, testConfig(), "analyze", path)
	assert.Equal(t, cli.ExitFindings, code)
	assert.Contains(t, out, "Loaded 1024 bytes")
	assert.Contains(t, out, "Analyzed 8192 bits")
	assert.Contains(t, out, "SYSTEM FAILED")
	assert.Contains(t, out, "Shannon Entropy")
}

func TestAnalyze_JSON(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i % 16 }, 1024)

	code, out := run(t, testConfig(), "analyze", "--json", path)
	assert.Equal(t, cli.ExitFindings, code)

	var card struct {
		Label    string `json:"label"`
		Samples  int    `json:"samples"`
		Outcomes []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, 1024, card.Samples)
	assert.Len(t, card.Outcomes, 7)
}

func TestAnalyze_DefaultInputFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.InputFile = writeSamples(t, func(i int) int { return i % 16 }, 64)

	code, out := run(t, cfg, "analyze")
	assert.Equal(t, cli.ExitFindings, code)
	assert.Contains(t, out, "Loaded 64 bytes")
}

func TestAnalyze_IgnoreZero(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i % 16 }, 1024)

	_, out := run(t, testConfig(), "analyze", "--ignore-zero", path)
	assert.Contains(t, out, "Loaded 960 bytes")
}

func TestAnalyze_MissingFile(t *testing.T) {
	code, _ := run(t, testConfig(), "analyze", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, cli.ExitIOError, code)
}

func TestAnalyze_NoValidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n-1\n300\n"), 0o644))

	code, out := run(t, testConfig(), "analyze", path)
	assert.Equal(t, cli.ExitIOError, code)
	assert.Contains(t, out, "No valid data found in "+path)
}

func TestCompare_WritesProcessedFile(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i % 16 }, 1024)
	out := filepath.Join(t.TempDir(), "processed.txt")

	code, text := run(t, testConfig(), "compare", "--out", out, path)
	assert.Equal(t, cli.ExitOK, code)
	assert.Contains(t, text, "COMPARATIVE ANALYSIS: RAW vs SHAKE-256 PROCESSED")
	assert.Contains(t, text, "IMPROVED")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1024)
	assert.Equal(t, []string{"176", "177", "224", "2"}, lines[:4])
}

func TestWhiten_Stdout(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i }, 10)

	code, out := run(t, testConfig(), "whiten", "--out", "-", path)
	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "18\n150\n114\n11\n250\n172\n133\n4\n232\n77\n", out)
}

func TestWhiten_NegativeLength(t *testing.T) {
	path := writeSamples(t, func(i int) int { return i }, 10)

	code, _ := run(t, testConfig(), "whiten", "--length", "-1", path)
	assert.Equal(t, cli.ExitIOError, code)
}

func TestCapture_WithoutSerialDevice(t *testing.T) {
	code, _ := run(t, testConfig(), "capture", "--size", "64")
	assert.Equal(t, cli.ExitIOError, code)
}

func TestCapture_SizeOutOfRange(t *testing.T) {
	code, _ := run(t, testConfig(), "capture", "--size", "1")
	assert.Equal(t, cli.ExitIOError, code)
}

func TestUnknownCommand(t *testing.T) {
	code, _ := run(t, testConfig(), "frobnicate")
	assert.Equal(t, cli.ExitIOError, code)
}
