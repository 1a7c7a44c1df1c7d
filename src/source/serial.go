package source

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// ErrNotConfigured means no serial device name was supplied.
var ErrNotConfigured = errors.New("serial sample source not configured")

// SerialConfig describes a USB/serial hardware RNG.
type SerialConfig struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// OpenSerial opens the port and performs an initial health check before
// handing it out. The returned Health reflects that check.
func OpenSerial(cfg SerialConfig) (io.ReadCloser, *Health, error) {
	if cfg.Device == "" {
		return nil, nil, ErrNotConfigured
	}
	if cfg.Baud <= 0 {
		return nil, nil, fmt.Errorf("invalid serial baud rate: %d", cfg.Baud)
	}

	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}

	h := NewHealth()
	if err := CheckSource(p, h); err != nil {
		h.Set(false, err.Error())
		p.Close()
		return nil, h, err
	}
	h.Set(true, "")

	return p, h, nil
}
