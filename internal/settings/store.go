package settings

import (
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

// RecordSize is the size of the persisted settings record:
// background, foreground, invert flag.
const RecordSize = 3

// Store loads and saves Settings.
// Load never fails: a missing or malformed record yields Defaults().
type Store interface {
	Load() Settings
	Save(s Settings) error
}

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// FileStore keeps the settings record in a single file.
type FileStore struct {
	Path   string
	Logger logger

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() Settings {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logf("settings read failed, using defaults: %v", err)
		}
		return Defaults()
	}
	s, err := Decode(data)
	if err != nil {
		f.logf("settings record rejected, using defaults: %v", err)
		return Defaults()
	}
	return s
}

// Save writes the record atomically via temp file and rename.
func (f *FileStore) Save(s Settings) error {
	if !s.Valid() {
		return pkgerrors.Errorf("refusing to save inconsistent settings %+v", s)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "create settings dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp settings file")
	}
	tmpPath := tmp.Name()
	record := Encode(s)
	if _, err := tmp.Write(record[:]); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "write settings record")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "close settings record")
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrapf(err, "rename settings record to %s", f.Path)
	}
	return nil
}

func (f *FileStore) logf(format string, args ...interface{}) {
	if f.Logger != nil {
		f.Logger.Infof("settings", format, args...)
	}
}

// Encode returns the fixed-layout record for s.
func Encode(s Settings) [RecordSize]byte {
	var invert byte
	if s.InvertColors {
		invert = 1
	}
	return [RecordSize]byte{byte(s.Background), byte(s.Foreground), invert}
}

// Decode parses a record written by Encode.
func Decode(data []byte) (Settings, error) {
	if len(data) != RecordSize {
		return Settings{}, pkgerrors.Errorf("record size %d, want %d", len(data), RecordSize)
	}
	if data[2] > 1 {
		return Settings{}, pkgerrors.Errorf("invalid invert flag %#x", data[2])
	}
	s := Settings{
		Background:   Color(data[0]),
		Foreground:   Color(data[1]),
		InvertColors: data[2] == 1,
	}
	if !s.Valid() {
		return Settings{}, pkgerrors.Errorf("colors %s/%s do not match invert=%v", s.Background, s.Foreground, s.InvertColors)
	}
	return s, nil
}

// MemoryStore keeps settings in memory. The zero value loads defaults.
type MemoryStore struct {
	mu    sync.Mutex
	saved *Settings
	Saves int
	Err   error
}

func (m *MemoryStore) Load() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Defaults()
	}
	return *m.saved
}

func (m *MemoryStore) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Saves++
	saved := s
	m.saved = &saved
	return nil
}
