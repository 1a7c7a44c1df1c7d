// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lost-woods/rngaudit/src/samples"
	"github.com/lost-woods/rngaudit/src/source"
)

const (
	DefaultInputFile      = "rng_data.txt"
	DefaultOutputFile     = "processed_rng.txt"
	DefaultPort           = "777"
	DefaultHealthInterval = 10_000 * time.Millisecond
	DefaultCaptureMax     = 1 << 20
)

type Config struct {
	InputFile      string
	OutputFile     string
	IgnoreZero     bool
	Port           string
	APIKey         string
	HealthInterval time.Duration
	CaptureMax     int
	Debug          bool
	Serial         source.SerialConfig
}

// SampleOptions is the loader configuration derived from c.
func (c Config) SampleOptions() samples.Options {
	return samples.Options{IgnoreZero: c.IgnoreZero}
}

// Load reads envFile (when it exists) into the environment and builds a Config.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		InputFile:      orDefault(getenv("RNG_INPUT_FILE"), DefaultInputFile),
		OutputFile:     orDefault(getenv("RNG_OUTPUT_FILE"), DefaultOutputFile),
		Port:           orDefault(getenv("PORT"), DefaultPort),
		APIKey:         getenv("API_KEY"),
		HealthInterval: DefaultHealthInterval,
		CaptureMax:     DefaultCaptureMax,
		Debug:          strings.EqualFold(getenv("LOG_LEVEL"), "debug"),
		Serial: source.SerialConfig{
			Device: getenv("SERIAL_DEVICE_NAME"),
		},
	}

	if v := getenv("RNG_IGNORE_ZERO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RNG_IGNORE_ZERO: %q", v)
		}
		cfg.IgnoreZero = b
	}

	if v := getenv("RNG_HEALTH_INTERVAL"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("invalid RNG_HEALTH_INTERVAL: %q", v)
		}
		cfg.HealthInterval = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("CAPTURE_MAX_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid CAPTURE_MAX_BYTES: %q", v)
		}
		cfg.CaptureMax = n
	}

	// Serial settings only matter once a device is named.
	if cfg.Serial.Device != "" {
		baudStr := getenv("SERIAL_BAUD_RATE")
		baud, err := strconv.Atoi(baudStr)
		if err != nil || baud <= 0 {
			return Config{}, fmt.Errorf("invalid SERIAL_BAUD_RATE: %q", baudStr)
		}
		cfg.Serial.Baud = baud

		timeoutStr := getenv("SERIAL_READ_TIMEOUT")
		timeoutMs, err := strconv.Atoi(orDefault(timeoutStr, "0"))
		if err != nil || timeoutMs < 0 {
			return Config{}, fmt.Errorf("invalid SERIAL_READ_TIMEOUT: %q", timeoutStr)
		}
		cfg.Serial.ReadTimeout = time.Duration(timeoutMs) * time.Millisecond
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
