package types

import "errors"

// ContactRepository is the persistence capability a storage backend provides.
// The phonebook service loads the whole collection once and writes the whole
// collection back after every mutation.
type ContactRepository interface {
	// GetAll returns every stored contact in storage order.
	// Missing, empty, or corrupt data yields an empty slice and a nil error;
	// an error is reserved for backend failures unrelated to the data itself.
	GetAll() ([]*Contact, error)

	// SaveAll replaces the stored collection with contacts. Implementations
	// must not leave a partial write behind: either the new state is fully
	// committed or the previous state remains intact.
	SaveAll(contacts []*Contact) error
}

// Standard errors.
var (
	ErrNotFound     = errors.New("contact not found")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrDuplicateID  = errors.New("duplicate contact ID")
)
