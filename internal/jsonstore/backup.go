package jsonstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Backup file naming: <file>.<timestamp>.bak, e.g.
// phonebook.json.20260221_153000.bak. Backups taken within the same second
// overwrite each other.
const (
	BackupTimeLayout = "20060102_150405"
	BackupExt        = ".bak"
)

// BackupPath returns the backup file name for path at the given timestamp.
func BackupPath(path, timestamp string) string {
	return path + "." + timestamp + BackupExt
}

// backup copies the current file to a timestamped sibling when it exists and
// is non-empty. It returns the backup path, or "" when nothing was copied.
func (s *Store) backup() (string, error) {
	info, err := s.fs.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat contacts file: %w", err)
	}
	if info.Size() == 0 {
		return "", nil
	}

	dst := BackupPath(s.path, s.now().Format(BackupTimeLayout))
	if err := copyFile(s.fs, s.path, dst, info); err != nil {
		return "", fmt.Errorf("backing up %s: %w", s.path, err)
	}
	s.logger.Info("contacts file backed up", "path", s.path, "backup", dst)
	return dst, nil
}

// copyFile copies src to dst, keeping the source mode and modification time.
func copyFile(fs afero.Fs, src, dst string, info os.FileInfo) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Backups lists existing backup files for the store, oldest first.
func (s *Store) Backups() ([]string, error) {
	dir := filepath.Dir(s.path)
	prefix := filepath.Base(s.path) + "."

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	var backups []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, BackupExt) {
			continue
		}
		backups = append(backups, filepath.Join(dir, name))
	}
	// The timestamp layout sorts lexically in time order.
	sort.Strings(backups)
	return backups, nil
}
