// Package types defines the Contact entity, the ContactRepository interface
// that storage backends implement, backend configuration, and the standard
// errors shared across the phonebook packages.
package types
