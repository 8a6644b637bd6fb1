package companion

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	pkgerrors "github.com/pkg/errors"
)

// Message keys understood by the watch.
const (
	KeyTemp         = "KEY_TEMP"
	KeyIcon         = "KEY_ICON"
	KeyInvertColors = "KEY_INVERT_COLORS"
)

// DefaultInboxSize is the largest inbound message body accepted, in bytes.
const DefaultInboxSize = 128

var (
	ErrInboxOverflow = pkgerrors.New("inbound message exceeds inbox size")
	ErrMalformed     = pkgerrors.New("malformed inbound message")
)

// Message is one inbound companion message. Absent keys are nil.
type Message struct {
	Temperature  *int    `json:"KEY_TEMP,omitempty"`
	Icon         *string `json:"KEY_ICON,omitempty"`
	InvertColors *Flag   `json:"KEY_INVERT_COLORS,omitempty"`
}

// HasWeather reports whether both temperature and icon are present.
// A message carrying only one of them leaves the weather display alone.
func (m Message) HasWeather() bool {
	return m.Temperature != nil && m.Icon != nil
}

// Flag is a 0/1 directive. JSON booleans are accepted too, as settings pages
// tend to send them.
type Flag int

func (f Flag) Enabled() bool { return f == 1 }

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	switch s {
	case "true":
		*f = 1
		return nil
	case "false":
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return pkgerrors.Errorf("flag must be 0, 1 or a boolean, got %s", data)
	}
	*f = Flag(n)
	return nil
}

// Decode reads one message of at most limit bytes from r.
func Decode(r io.Reader, limit int) (Message, error) {
	if limit <= 0 {
		limit = DefaultInboxSize
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return Message{}, pkgerrors.Wrap(err, "read inbound message")
	}
	if len(data) > limit {
		return Message{}, ErrInboxOverflow
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, pkgerrors.Wrap(ErrMalformed, err.Error())
	}
	return msg, nil
}

// IntPtr and StringPtr build optional message fields.
func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }

func FlagPtr(v bool) *Flag {
	f := Flag(0)
	if v {
		f = 1
	}
	return &f
}
