package phonebook

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// ImportResult summarizes a successful import.
type ImportResult struct {
	Added   int // New contacts appended.
	Skipped int // Contacts whose ID already existed.
}

// RowError describes one rejected import row. Row is 1-based.
type RowError struct {
	Row int
	ID  string
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (id %q): %v", e.Row, e.ID, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportError is returned when any row of an import batch is invalid.
// Nothing from the batch is committed.
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	msgs := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		msgs[i] = r.Error()
	}
	return fmt.Sprintf("import rejected: %d invalid row(s): %s", len(e.Rows), strings.Join(msgs, "; "))
}

// Unwrap exposes the row errors to errors.Is and errors.As.
func (e *ImportError) Unwrap() []error {
	errs := make([]error, len(e.Rows))
	for i, r := range e.Rows {
		errs[i] = r
	}
	return errs
}

// Import validates the whole batch, then adds every contact whose ID is not
// already present and persists once. Any invalid row (a bad phone number or
// an ID repeated inside the batch) rejects the entire batch.
func (p *PhoneBook) Import(batch []*types.Contact) (ImportResult, error) {
	if err := validateBatch(batch); err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	var fresh []*types.Contact
	for _, c := range batch {
		if _, ok := p.FindByID(c.ID); ok {
			result.Skipped++
			continue
		}
		fresh = append(fresh, c)
	}
	if len(fresh) == 0 {
		p.logger.Info("import added nothing", "skipped", result.Skipped)
		return result, nil
	}

	prev := p.contacts
	p.contacts = append(slices.Clip(p.contacts), fresh...)
	if err := p.commit(prev); err != nil {
		return ImportResult{}, err
	}
	result.Added = len(fresh)
	p.logger.Info("contacts imported", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

func validateBatch(batch []*types.Contact) error {
	var rows []RowError
	seen := make(map[string]int, len(batch))
	for i, c := range batch {
		row := i + 1
		if first, dup := seen[c.ID]; dup {
			rows = append(rows, RowError{Row: row, ID: c.ID, Err: fmt.Errorf("%w: also on row %d", types.ErrDuplicateID, first)})
			continue
		}
		seen[c.ID] = row
		for _, label := range slices.Sorted(maps.Keys(c.Phones)) {
			if !types.ValidPhone(c.Phones[label]) {
				rows = append(rows, RowError{Row: row, ID: c.ID, Err: fmt.Errorf("%w: %s %q", types.ErrInvalidPhone, label, c.Phones[label])})
				break
			}
		}
	}
	if len(rows) > 0 {
		return &ImportError{Rows: rows}
	}
	return nil
}
