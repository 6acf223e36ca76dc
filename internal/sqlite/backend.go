// Package sqlite implements the ContactRepository over a SQLite database.
// Contacts live in a contacts table and their phone numbers in a phones
// table; SaveAll rewrites both inside one transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Backup naming matches the JSON backend: <file>.<timestamp>.bak.
const (
	backupTimeLayout = "20060102_150405"
	backupExt        = ".bak"
)

var _ types.ContactRepository = (*Backend)(nil)

// Backend is a SQLite backed ContactRepository.
type Backend struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for backups and load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides the clock used to name backups.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// DBPath returns the database path for a data directory and data file name.
// A ".json" extension is swapped for ".db" so both backends can share the
// configured file name.
func DBPath(dataDir, dataFile string) string {
	name := strings.TrimSuffix(dataFile, filepath.Ext(dataFile)) + ".db"
	return filepath.Join(dataDir, name)
}

// Open opens (creating if needed) the database at path and ensures the schema.
// The caller must call Close.
func Open(path string, opts ...Option) (*Backend, error) {
	b := &Backend{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps every statement on the same database handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	return b, nil
}

// Close releases the database handle. Close is idempotent.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// GetAll loads all contacts in insertion order.
func (b *Backend) GetAll() ([]*types.Contact, error) {
	if b.db == nil {
		return nil, fmt.Errorf("getting contacts: database is closed")
	}

	phones, err := b.loadPhones()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT id, first_name, last_name, city, job, created_at FROM contacts ORDER BY ordinal",
	)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*types.Contact{}
	for rows.Next() {
		var r types.Record
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.City, &r.Job, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		r.Phones = phones[r.ID]
		contacts = append(contacts, types.FromRecord(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}

// loadPhones returns every phone keyed by contact ID.
func (b *Backend) loadPhones() (map[string]map[string]string, error) {
	rows, err := b.db.Query("SELECT contact_id, label, number FROM phones")
	if err != nil {
		return nil, fmt.Errorf("querying phones: %w", err)
	}
	defer rows.Close()

	phones := make(map[string]map[string]string)
	for rows.Next() {
		var contactID, label, number string
		if err := rows.Scan(&contactID, &label, &number); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		if phones[contactID] == nil {
			phones[contactID] = make(map[string]string)
		}
		phones[contactID][label] = number
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phones: %w", err)
	}
	return phones, nil
}

// SaveAll replaces all stored contacts in a single transaction. A non-empty
// save over existing data is preceded by a backup copy of the database.
func (b *Backend) SaveAll(contacts []*types.Contact) error {
	if b.db == nil {
		return fmt.Errorf("saving contacts: database is closed")
	}

	if len(contacts) > 0 {
		if _, err := b.backup(); err != nil {
			return err
		}
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clearing phones: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	contactStmt, err := tx.Prepare(
		"INSERT INTO contacts (id, ordinal, first_name, last_name, city, job, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.Prepare("INSERT INTO phones (contact_id, label, number) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing phone insert: %w", err)
	}
	defer phoneStmt.Close()

	for i, c := range contacts {
		if _, err := contactStmt.Exec(c.ID, i, c.FirstName, c.LastName, c.City, c.Job, c.CreatedAt); err != nil {
			return fmt.Errorf("inserting contact %s: %w", c.ID, err)
		}
		for label, number := range c.Phones {
			if _, err := phoneStmt.Exec(c.ID, label, number); err != nil {
				return fmt.Errorf("inserting phone %s of contact %s: %w", label, c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing contacts: %w", err)
	}
	return nil
}

// backup writes a consistent copy of the database next to it when it already
// holds contacts. It returns the backup path, or "" when nothing was copied.
func (b *Backend) backup() (string, error) {
	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&count); err != nil {
		return "", fmt.Errorf("counting contacts: %w", err)
	}
	if count == 0 {
		return "", nil
	}

	dst := b.path + "." + b.now().Format(backupTimeLayout) + backupExt
	// VACUUM INTO refuses to overwrite; same-second backups replace each other.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing stale backup: %w", err)
	}
	if _, err := b.db.Exec("VACUUM INTO ?", dst); err != nil {
		return "", fmt.Errorf("backing up %s: %w", b.path, err)
	}
	b.logger.Info("contacts database backed up", "path", b.path, "backup", dst)
	return dst, nil
}

// Backups lists existing backup files for the database, oldest first.
func (b *Backend) Backups() ([]string, error) {
	matches, err := filepath.Glob(globEscape(b.path) + ".*" + backupExt)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	// Glob returns names in lexical order, which is time order for the layout.
	return matches, nil
}

// globEscape escapes glob metacharacters in a literal path.
func globEscape(path string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(path)
}
