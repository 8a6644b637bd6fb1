package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInvert_ComplementaryPair(t *testing.T) {
	for _, invert := range []bool{false, true} {
		s := ApplyInvert(invert)
		assert.NotEqual(t, s.Background, s.Foreground)
		assert.Equal(t, invert, s.InvertColors)
		assert.True(t, s.Valid())
	}
	assert.Equal(t, Settings{Background: ColorWhite, Foreground: ColorBlack}, ApplyInvert(false))
	assert.Equal(t, Settings{Background: ColorBlack, Foreground: ColorWhite, InvertColors: true}, ApplyInvert(true))
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, ColorWhite, d.Background)
	assert.Equal(t, ColorBlack, d.Foreground)
	assert.False(t, d.InvertColors)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.bin")
	store := NewFileStore(path)

	for _, s := range []Settings{ApplyInvert(true), ApplyInvert(false)} {
		require.NoError(t, store.Save(s))
		assert.Equal(t, s, store.Load())
	}
}

func TestFileStore_MissingFileLoadsDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Equal(t, Defaults(), store.Load())
}

func TestFileStore_MalformedRecordLoadsDefaults(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "short", data: []byte{0x00, 0xFF}},
		{name: "long", data: []byte{0x00, 0xFF, 0x01, 0x00}},
		{name: "unknown color", data: []byte{0x10, 0xFF, 0x01}},
		{name: "same colors", data: []byte{0xFF, 0xFF, 0x00}},
		{name: "colors disagree with flag", data: []byte{0x00, 0xFF, 0x00}},
		{name: "bad flag", data: []byte{0xFF, 0x00, 0x07}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.bin")
			require.NoError(t, os.WriteFile(path, tt.data, 0o644))
			assert.Equal(t, Defaults(), NewFileStore(path).Load())
		})
	}
}

func TestFileStore_RejectsInconsistentSettings(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.bin"))
	err := store.Save(Settings{Background: ColorBlack, Foreground: ColorBlack})
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	record := Encode(ApplyInvert(true))
	assert.Equal(t, [RecordSize]byte{0x00, 0xFF, 0x01}, record)

	s, err := Decode(record[:])
	require.NoError(t, err)
	assert.Equal(t, ApplyInvert(true), s)
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	assert.Equal(t, Defaults(), m.Load())
	require.NoError(t, m.Save(ApplyInvert(true)))
	assert.Equal(t, ApplyInvert(true), m.Load())
	assert.Equal(t, 1, m.Saves)
}
