package config

import (
	"time"

	pkgerrors "github.com/pkg/errors"
)

// Duration wraps time.Duration with TOML-friendly string parsing ("30s", "5m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid duration %q", s)
	}
	if parsed < 0 {
		return pkgerrors.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
