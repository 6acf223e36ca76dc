// Package jsonstore implements the ContactRepository over a single JSON file.
// The file holds a JSON array of contact records. Every non-empty save first
// copies the previous file to a timestamped backup next to it, then replaces
// the file atomically.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check: Store must implement ContactRepository.
var _ types.ContactRepository = (*Store)(nil)

// Store is a JSON file backed ContactRepository.
type Store struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for corrupt-data warnings and backups.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to name backups.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Store for the file at path on fs. Nothing is read or created
// until GetAll or SaveAll is called.
func New(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:     fs,
		path:   path,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// GetAll loads every contact from the backing file. A missing, empty,
// unreadable, or malformed file yields an empty slice.
func (s *Store) GetAll() ([]*types.Contact, error) {
	info, err := s.fs.Stat(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot stat contacts file", "path", s.path, "err", err)
		}
		return []*types.Contact{}, nil
	}
	if info.Size() == 0 {
		return []*types.Contact{}, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		s.logger.Warn("cannot read contacts file", "path", s.path, "err", err)
		return []*types.Contact{}, nil
	}

	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("contacts file is not a valid JSON array", "path", s.path, "err", err)
		return []*types.Contact{}, nil
	}

	contacts := make([]*types.Contact, 0, len(records))
	for _, r := range records {
		contacts = append(contacts, types.FromRecord(r))
	}
	return contacts, nil
}

// SaveAll writes contacts to the backing file, replacing its content.
// When contacts is non-empty and a non-empty file already exists, the old
// file is backed up first.
func (s *Store) SaveAll(contacts []*types.Contact) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if len(contacts) > 0 {
		if _, err := s.backup(); err != nil {
			return err
		}
	}

	data, err := encode(contacts)
	if err != nil {
		return err
	}
	return s.writeAtomic(data)
}

// encode renders contacts as an indented JSON array. Non-ASCII and HTML
// characters are written literally.
func encode(contacts []*types.Contact) ([]byte, error) {
	records := make([]types.Record, 0, len(contacts))
	for _, c := range contacts {
		r := c.Record()
		if r.Phones == nil {
			r.Phones = map[string]string{}
		}
		records = append(records, r)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding contacts: %w", err)
	}
	return buf.Bytes(), nil
}

// writeAtomic writes data using the temp-file, fsync, rename pattern so the
// target is either fully replaced or left untouched.
func (s *Store) writeAtomic(data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("writing contacts: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
