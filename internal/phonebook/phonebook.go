// Package phonebook implements the contact service: an in-memory collection
// loaded once from a ContactRepository, mutated by add, update, delete and
// import, and written back in full after every change.
package phonebook

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mesh-intelligence/phonebook/internal/fuzzy"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Search tuning for SearchByLastName.
const (
	LastNameCutoff     = fuzzy.DefaultCutoff
	LastNameMaxMatches = fuzzy.DefaultLimit
)

// PhoneBook holds the contact collection in insertion order.
type PhoneBook struct {
	repo     types.ContactRepository
	logger   *slog.Logger
	contacts []*types.Contact
}

// New loads all contacts from repo. A nil logger discards log output.
func New(repo types.ContactRepository, logger *slog.Logger) (*PhoneBook, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	contacts, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}
	logger.Debug("contacts loaded", "count", len(contacts))
	return &PhoneBook{repo: repo, logger: logger, contacts: contacts}, nil
}

// Contacts returns the current collection in insertion order. The slice is a
// copy; the contacts are shared.
func (p *PhoneBook) Contacts() []*types.Contact {
	return slices.Clone(p.contacts)
}

// Len returns the number of contacts.
func (p *PhoneBook) Len() int {
	return len(p.contacts)
}

// FindByID returns the contact with the given ID.
func (p *PhoneBook) FindByID(id string) (*types.Contact, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return p.contacts[i], true
}

func (p *PhoneBook) indexOf(id string) int {
	return slices.IndexFunc(p.contacts, func(c *types.Contact) bool { return c.ID == id })
}

// Add appends c and persists the collection. It returns false without
// changing anything when a contact with the same ID already exists.
func (p *PhoneBook) Add(c *types.Contact) (bool, error) {
	if _, ok := p.FindByID(c.ID); ok {
		p.logger.Warn("contact with this ID already exists", "id", c.ID)
		return false, nil
	}

	prev := p.contacts
	p.contacts = append(slices.Clip(p.contacts), c)
	if err := p.commit(prev); err != nil {
		return false, err
	}
	p.logger.Info("contact added", "id", c.ID, "first_name", c.FirstName, "last_name", c.LastName)
	return true, nil
}

// Delete removes the contact with the given ID and persists the collection.
// It returns false when no such contact exists.
func (p *PhoneBook) Delete(id string) (bool, error) {
	i := p.indexOf(id)
	if i < 0 {
		p.logger.Warn("contact not found for deletion", "id", id)
		return false, nil
	}

	prev := p.contacts
	p.contacts = slices.Delete(slices.Clone(p.contacts), i, i+1)
	if err := p.commit(prev); err != nil {
		return false, err
	}
	p.logger.Info("contact deleted", "id", id)
	return true, nil
}

// Update applies the fields set in u to the contact with the given ID and
// persists the collection. Values are stored as given, without
// normalization. It returns false when no such contact exists.
func (p *PhoneBook) Update(id string, u types.ContactUpdate) (bool, error) {
	i := p.indexOf(id)
	if i < 0 {
		p.logger.Warn("contact not found for update", "id", id)
		return false, nil
	}

	c := p.contacts[i]
	before := c.Clone()
	c.Apply(u)
	if err := p.repo.SaveAll(p.contacts); err != nil {
		*c = *before
		return false, fmt.Errorf("saving contacts: %w", err)
	}
	p.logger.Info("contact updated", "id", id)
	return true, nil
}

// SearchByLastName returns the contacts whose last name closely matches
// query after capitalization. Up to LastNameMaxMatches distinct surnames
// scoring at least LastNameCutoff are matched; every contact carrying one of
// them is returned, in collection order.
func (p *PhoneBook) SearchByLastName(query string) []*types.Contact {
	var lastNames []string
	seen := make(map[string]bool)
	for _, c := range p.contacts {
		if !seen[c.LastName] {
			seen[c.LastName] = true
			lastNames = append(lastNames, c.LastName)
		}
	}

	matches := fuzzy.CloseMatches(types.Capitalize(query), lastNames, LastNameMaxMatches, LastNameCutoff)
	if len(matches) == 0 {
		return nil
	}

	var result []*types.Contact
	for _, c := range p.contacts {
		if slices.Contains(matches, c.LastName) {
			result = append(result, c)
		}
	}
	return result
}

// SearchByPhone returns the contacts with any phone number containing query.
func (p *PhoneBook) SearchByPhone(query string) []*types.Contact {
	var result []*types.Contact
	for _, c := range p.contacts {
		for _, number := range c.Phones {
			if strings.Contains(number, query) {
				result = append(result, c)
				break
			}
		}
	}
	return result
}

// commit persists the collection, restoring prev in memory on failure.
func (p *PhoneBook) commit(prev []*types.Contact) error {
	if err := p.repo.SaveAll(p.contacts); err != nil {
		p.contacts = prev
		return fmt.Errorf("saving contacts: %w", err)
	}
	return nil
}
