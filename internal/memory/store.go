// Package memory provides an in-process ContactRepository. Contacts are deep
// copied on the way in and out so callers observe the same isolation a file
// backend gives them.
package memory

import (
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

var _ types.ContactRepository = (*Store)(nil)

// Store keeps contacts in memory.
type Store struct {
	contacts []*types.Contact
	saves    int
	failWith error
}

// New returns a Store seeded with copies of contacts.
func New(contacts ...*types.Contact) *Store {
	return &Store{contacts: cloneAll(contacts)}
}

// GetAll returns copies of the stored contacts.
func (s *Store) GetAll() ([]*types.Contact, error) {
	return cloneAll(s.contacts), nil
}

// SaveAll replaces the stored contacts with copies of contacts.
func (s *Store) SaveAll(contacts []*types.Contact) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.contacts = cloneAll(contacts)
	s.saves++
	return nil
}

// Saves returns how many times SaveAll succeeded.
func (s *Store) Saves() int {
	return s.saves
}

// FailSaves makes every subsequent SaveAll return err. A nil err restores
// normal behavior.
func (s *Store) FailSaves(err error) {
	s.failWith = err
}

func cloneAll(contacts []*types.Contact) []*types.Contact {
	out := make([]*types.Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Clone())
	}
	return out
}
