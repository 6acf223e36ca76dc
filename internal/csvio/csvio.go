// Package csvio reads and writes contacts as CSV with the header
// id,first_name,last_name,phones,city,job,created_at. Phones are encoded as
// "label:number" pairs joined by "; ".
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Header is the column order written by Export.
var Header = []string{"id", "first_name", "last_name", "phones", "city", "job", "created_at"}

const phoneSep = "; "

// ErrNoHeader is returned when a CSV stream has no header row.
var ErrNoHeader = errors.New("csv has no header row")

// Export writes the header followed by one row per contact.
func Export(w io.Writer, contacts []*types.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range contacts {
		row := []string{c.ID, c.FirstName, c.LastName, EncodePhones(c.Phones), c.City, c.Job, c.CreatedAt}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing contact %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes contacts to path, replacing any existing file.
func ExportFile(fs afero.Fs, path string, contacts []*types.Contact) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Export(f, contacts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Import parses contacts from r. Columns are located by header name and
// missing columns read as empty. Rows without an id or created_at get fresh
// values; text fields are capitalized like any new contact.
func Import(r io.Reader) ([]*types.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var contacts []*types.Contact
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		contacts = append(contacts, types.FromRecord(types.Record{
			ID:        field("id"),
			FirstName: field("first_name"),
			LastName:  field("last_name"),
			Phones:    DecodePhones(field("phones")),
			City:      field("city"),
			Job:       field("job"),
			CreatedAt: field("created_at"),
		}))
	}
	return contacts, nil
}

// ImportFile parses contacts from the file at path. A missing file yields an
// error wrapping fs.ErrNotExist.
func ImportFile(fs afero.Fs, path string) ([]*types.Contact, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	contacts, err := Import(f)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return contacts, nil
}

// EncodePhones joins phones as "label:number" pairs sorted by label.
func EncodePhones(phones map[string]string) string {
	parts := make([]string, 0, len(phones))
	for _, label := range slices.Sorted(maps.Keys(phones)) {
		parts = append(parts, label+":"+phones[label])
	}
	return strings.Join(parts, phoneSep)
}

// DecodePhones parses the phones column. Entries without a colon are
// ignored; labels and numbers are trimmed.
func DecodePhones(s string) map[string]string {
	phones := make(map[string]string)
	for _, item := range strings.Split(s, ";") {
		label, number, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		phones[strings.TrimSpace(label)] = strings.TrimSpace(number)
	}
	return phones
}
