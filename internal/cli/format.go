package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// formatContact renders a contact as a labelled block.
func formatContact(c *types.Contact) string {
	return fmt.Sprintf("Name: %s %s\nPhones: %s\nCity: %s\nJob: %s\nID: %s\nCreated: %s",
		c.FirstName, c.LastName, formatPhones(c.Phones), c.City, c.Job, c.ID, c.CreatedAt)
}

// formatPhones renders phones as "label: number" pairs sorted by label.
func formatPhones(phones map[string]string) string {
	parts := make([]string, 0, len(phones))
	for _, label := range slices.Sorted(maps.Keys(phones)) {
		parts = append(parts, label+": "+phones[label])
	}
	return strings.Join(parts, ", ")
}

// printContacts writes contacts as text blocks separated by blank lines, or
// as a JSON array in JSON mode.
func printContacts(w io.Writer, contacts []*types.Contact, jsonMode bool) error {
	if jsonMode {
		records := make([]types.Record, 0, len(contacts))
		for _, c := range contacts {
			records = append(records, c.Record())
		}
		return writeJSON(w, records)
	}
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No contacts found")
		return nil
	}
	for i, c := range contacts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, formatContact(c))
	}
	return nil
}

func printContact(w io.Writer, c *types.Contact, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, c.Record())
	}
	fmt.Fprintln(w, formatContact(c))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return nil
}
