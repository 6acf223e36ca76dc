package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContactNormalizesFields(t *testing.T) {
	c := NewContact("lesya", "ukrainka", map[string]string{"mobile": "123456789"},
		WithCity("kyiv"),
		WithJob("Python developer"),
	)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Lesya", c.FirstName)
	assert.Equal(t, "Ukrainka", c.LastName)
	assert.Equal(t, "123456789", c.Phones["mobile"])
	assert.Equal(t, "Kyiv", c.City)
	assert.Equal(t, "Python developer", c.Job)
	assert.NotEmpty(t, c.CreatedAt)
}

func TestNewContactDefaults(t *testing.T) {
	c := NewContact("a", "b", nil)

	assert.Equal(t, "", c.City)
	assert.Equal(t, "", c.Job)
	require.NotNil(t, c.Phones, "phones must never be nil")
	assert.Empty(t, c.Phones)
}

func TestNewContactGeneratesUniqueIDs(t *testing.T) {
	c1 := NewContact("A", "B", map[string]string{"mobile": "11111"})
	c2 := NewContact("A", "B", map[string]string{"mobile": "22222"})

	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestNewContactCopiesPhones(t *testing.T) {
	phones := map[string]string{"mobile": "11111"}
	c := NewContact("A", "B", phones)

	phones["mobile"] = "99999"
	assert.Equal(t, "11111", c.Phones["mobile"], "caller map must not alias contact phones")
}

func TestWithIDAndCreatedAtPreserveValues(t *testing.T) {
	c := NewContact("anna", "franko", nil, WithID("123"), WithCreatedAt("2024-01-01T00:00:00"))

	assert.Equal(t, "123", c.ID)
	assert.Equal(t, "2024-01-01T00:00:00", c.CreatedAt)

	generated := NewContact("anna", "franko", nil, WithID(""), WithCreatedAt(""))
	assert.NotEmpty(t, generated.ID)
	assert.NotEmpty(t, generated.CreatedAt)
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"kyiv", "Kyiv"},
		{"KYIV", "Kyiv"},
		{"python developer", "Python developer"},
		{"lVIV", "Lviv"},
		{"україна", "Україна"},
		{"1st", "1st"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Capitalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Capitalize(got), "normalization must be idempotent")
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	c := NewContact("lesya", "ukrainka", map[string]string{"mobile": "12345", "home": "67890"},
		WithCity("kyiv"), WithJob("poet"))

	got := FromRecord(c.Record())

	assert.Equal(t, c, got)
}

func TestFromRecordDefaultsAbsentFields(t *testing.T) {
	got := FromRecord(Record{FirstName: "anna", LastName: "franko"})

	assert.NotEmpty(t, got.ID)
	assert.NotEmpty(t, got.CreatedAt)
	assert.NotNil(t, got.Phones)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, "Franko", got.LastName)
}

func TestFromRecordPreservesStoredValues(t *testing.T) {
	got := FromRecord(Record{
		ID:        "123",
		FirstName: "Anna",
		LastName:  "Franko",
		Phones:    map[string]string{"mobile": "555"},
		City:      "Odessa",
		Job:       "Manager",
		CreatedAt: "2024-01-01T00:00:00",
	})

	assert.Equal(t, "123", got.ID)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, "Franko", got.LastName)
	assert.Equal(t, "555", got.Phones["mobile"])
	assert.Equal(t, "2024-01-01T00:00:00", got.CreatedAt)
}

func TestCloneIsDeep(t *testing.T) {
	c := NewContact("a", "b", map[string]string{"mobile": "11111"})
	cp := c.Clone()

	cp.Phones["mobile"] = "22222"
	cp.City = "Lviv"

	assert.Equal(t, "11111", c.Phones["mobile"])
	assert.Equal(t, "", c.City)
}

func TestApplyOnlySetFields(t *testing.T) {
	c := NewContact("lesya", "ukrainka", map[string]string{"mobile": "12345"}, WithCity("kyiv"), WithJob("qa"))
	city := "lviv"

	c.Apply(ContactUpdate{City: &city})

	assert.Equal(t, "lviv", c.City, "Apply must not re-normalize")
	assert.Equal(t, "Lesya", c.FirstName)
	assert.Equal(t, "Qa", c.Job)
	assert.Equal(t, "12345", c.Phones["mobile"])
}

func TestApplyReplacesPhones(t *testing.T) {
	c := NewContact("a", "b", map[string]string{"mobile": "12345"})

	c.Apply(ContactUpdate{Phones: map[string]string{"home": "67890"}})

	assert.Equal(t, map[string]string{"home": "67890"}, c.Phones)
}

func TestContactUpdateIsEmpty(t *testing.T) {
	assert.True(t, ContactUpdate{}.IsEmpty())
	job := "x"
	assert.False(t, ContactUpdate{Job: &job}.IsEmpty())
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"12345", true},
		{"0501234567", true},
		{"123abc", false},
		{"", false},
		{"1234", false},
		{"+380501234567", false},
		{"12 345", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPhone(tt.number))
		})
	}
}

func TestFullName(t *testing.T) {
	c := NewContact("lesya", "ukrainka", nil)
	assert.Equal(t, "Lesya Ukrainka", c.FullName())
}
