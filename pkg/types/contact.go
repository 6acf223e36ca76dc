package types

import (
	"maps"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CreatedAtLayout is the ISO-8601 layout used for Contact.CreatedAt.
const CreatedAtLayout = "2006-01-02T15:04:05.000000-07:00"

// minPhoneDigits is the shortest phone number ValidPhone accepts.
const minPhoneDigits = 5

// Contact is a single phone book record.
type Contact struct {
	ID        string            // Generated on creation, immutable.
	FirstName string            // Capitalized on construction.
	LastName  string            // Capitalized on construction.
	Phones    map[string]string // Label (mobile, home, ...) to number. Never nil.
	City      string            // Capitalized on construction, may be empty.
	Job       string            // Capitalized on construction, may be empty.
	CreatedAt string            // ISO-8601 creation timestamp, immutable.
}

// Record is the stored form of a contact. Absent fields decode to their zero
// values and are defaulted by FromRecord.
type Record struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Phones    map[string]string `json:"phones"`
	City      string            `json:"city"`
	Job       string            `json:"job"`
	CreatedAt string            `json:"created_at"`
}

// ContactOption configures optional fields in NewContact.
type ContactOption func(*Contact)

// WithCity sets the city. It is capitalized like the other text fields.
func WithCity(city string) ContactOption {
	return func(c *Contact) { c.City = city }
}

// WithJob sets the job title.
func WithJob(job string) ContactOption {
	return func(c *Contact) { c.Job = job }
}

// WithID preserves an existing ID instead of generating one. An empty id
// keeps the generated value.
func WithID(id string) ContactOption {
	return func(c *Contact) {
		if id != "" {
			c.ID = id
		}
	}
}

// WithCreatedAt preserves an existing creation timestamp. An empty value
// keeps the generated one.
func WithCreatedAt(createdAt string) ContactOption {
	return func(c *Contact) {
		if createdAt != "" {
			c.CreatedAt = createdAt
		}
	}
}

// NewContact builds a contact with a fresh ID and creation time, then
// normalizes the text fields.
func NewContact(firstName, lastName string, phones map[string]string, opts ...ContactOption) *Contact {
	c := &Contact{
		ID:        NewID(),
		FirstName: firstName,
		LastName:  lastName,
		Phones:    maps.Clone(phones),
		CreatedAt: time.Now().UTC().Format(CreatedAtLayout),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Phones == nil {
		c.Phones = make(map[string]string)
	}
	c.FirstName = Capitalize(c.FirstName)
	c.LastName = Capitalize(c.LastName)
	c.City = Capitalize(c.City)
	c.Job = Capitalize(c.Job)
	return c
}

// NewID generates a new UUID v7 contact ID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.NewString()
	}
	return id.String()
}

// FromRecord reconstructs a contact from its stored form. The stored ID and
// creation time are preserved when present.
func FromRecord(r Record) *Contact {
	return NewContact(r.FirstName, r.LastName, r.Phones,
		WithCity(r.City),
		WithJob(r.Job),
		WithID(r.ID),
		WithCreatedAt(r.CreatedAt),
	)
}

// Record returns the stored form of the contact.
func (c *Contact) Record() Record {
	return Record{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phones:    maps.Clone(c.Phones),
		City:      c.City,
		Job:       c.Job,
		CreatedAt: c.CreatedAt,
	}
}

// Clone returns a deep copy of the contact.
func (c *Contact) Clone() *Contact {
	cp := *c
	cp.Phones = maps.Clone(c.Phones)
	if cp.Phones == nil {
		cp.Phones = make(map[string]string)
	}
	return &cp
}

// FullName returns "First Last".
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ContactUpdate lists the fields an update may set. A nil field is left
// untouched. Values are stored as given; callers normalize beforehand.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	City      *string
	Job       *string
	Phones    map[string]string
}

// IsEmpty reports whether the update sets no field.
func (u ContactUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.City == nil && u.Job == nil && u.Phones == nil
}

// Apply overwrites the fields set in u.
func (c *Contact) Apply(u ContactUpdate) {
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.City != nil {
		c.City = *u.City
	}
	if u.Job != nil {
		c.Job = *u.Job
	}
	if u.Phones != nil {
		c.Phones = maps.Clone(u.Phones)
	}
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
// Capitalize(Capitalize(s)) == Capitalize(s).
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}

// ValidPhone reports whether number is made only of digits and is at least
// five digits long.
func ValidPhone(number string) bool {
	if utf8.RuneCountInString(number) < minPhoneDigits {
		return false
	}
	for _, r := range number {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
