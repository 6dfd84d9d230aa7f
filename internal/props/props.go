// Package props implements the runtime key/value store backing operational
// settings that must survive unexpected shutdowns, such as the student
// number sequence. The file is loaded lazily and, by default, saved on
// every write so state on disk never trails state in memory.
package props

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/magiconair/properties"
)

// ErrConfig marks a failure to read or write the backing file. It is never
// swallowed: inconsistent properties can corrupt ID generation.
var ErrConfig = errors.New("properties store failure")

const fileHeader = "# --- Application configuration ---\n"

// Store is a lazy-loaded, auto-persisting key=value file with typed
// accessors and dot-separated section extraction.
type Store struct {
	mu       sync.Mutex
	path     string
	autoSave bool
	defaults map[string]string
	props    *properties.Properties // nil until loaded
}

// NewStore creates a store over the file at path. The defaults populate the
// file if it doesn't exist on first access. Auto-save starts enabled.
func NewStore(path string, defaults map[string]string) *Store {
	return &Store{
		path:     path,
		autoSave: true,
		defaults: defaults,
	}
}

// SetAutoSave toggles saving on every Set call. With auto-save off the
// caller must invoke Save explicitly.
func (s *Store) SetAutoSave(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSave = on
}

func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", err
	}

	value, _ := s.props.Get(key)
	return value, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	if _, _, err := s.props.Set(key, value); err != nil {
		return fmt.Errorf("%w: setting %q: %v", ErrConfig, key, err)
	}

	if s.autoSave {
		return s.save()
	}
	return nil
}

func (s *Store) GetInt(key string) (int, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an int: %v", ErrConfig, key, err)
	}
	return n, nil
}

func (s *Store) SetInt(key string, value int) error {
	return s.Set(key, strconv.Itoa(value))
}

func (s *Store) GetFloat(key string) (float64, error) {
	value, err := s.Get(key)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a float: %v", ErrConfig, key, err)
	}
	return f, nil
}

func (s *Store) SetFloat(key string, value float64) error {
	return s.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// Section returns every property whose key starts with prefix followed by
// a dot. Example: Section("db") returns db.user, db.pass, ...
func (s *Store) Section(prefix string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	section := map[string]string{}
	filtered := s.props.FilterPrefix(prefix + ".")
	for _, key := range filtered.Keys() {
		value, _ := filtered.Get(key)
		section[key] = value
	}
	return section, nil
}

// Save persists the current properties regardless of the auto-save setting.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	return s.save()
}

// load reads the file on first access. A missing file is restored: parent
// directories are created and the defaults written out in a single save.
func (s *Store) load() error {
	if s.props != nil {
		return nil
	}

	p, err := properties.LoadFile(s.path, properties.UTF8)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.restore()
		}
		return fmt.Errorf("%w: loading %s: %v", ErrConfig, s.path, err)
	}

	s.props = p
	return nil
}

// restore creates the file with the default properties. Auto-save stays
// suppressed during population so the defaults hit disk in one write.
func (s *Store) restore() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrConfig, dir, err)
		}
	}

	s.props = properties.NewProperties()
	for key, value := range s.defaults {
		if _, _, err := s.props.Set(key, value); err != nil {
			return fmt.Errorf("%w: setting default %q: %v", ErrConfig, key, err)
		}
	}

	return s.save()
}

func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrConfig, s.path, err)
	}
	defer f.Close()

	if _, err = f.WriteString(fileHeader); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrConfig, s.path, err)
	}
	if _, err = s.props.Write(f, properties.UTF8); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrConfig, s.path, err)
	}
	return nil
}
