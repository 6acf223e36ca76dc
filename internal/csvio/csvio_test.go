package csvio

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func TestExportWritesHeaderAndRows(t *testing.T) {
	c := types.NewContact("lesya", "ukrainka", map[string]string{"mobile": "12345", "home": "55555"},
		types.WithID("1"), types.WithCity("kyiv"), types.WithCreatedAt("2024-01-01T00:00:00.000000+00:00"))
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, []*types.Contact{c}))

	want := "id,first_name,last_name,phones,city,job,created_at\n" +
		"1,Lesya,Ukrainka,home:55555; mobile:12345,Kyiv,,2024-01-01T00:00:00.000000+00:00\n"
	assert.Equal(t, want, buf.String())
}

func TestExportEmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Export(&buf, nil))

	assert.Equal(t, "id,first_name,last_name,phones,city,job,created_at\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	in := []*types.Contact{
		types.NewContact("Лариса", "Косач", map[string]string{"mobile": "12345"}, types.WithCity("Київ"), types.WithJob("Поетеса")),
		types.NewContact("Ivan", "Franko, Jr", map[string]string{"work": "98765", "home": "55555"}),
	}

	require.NoError(t, ExportFile(fsys, "out.csv", in))
	out, err := ImportFile(fsys, "out.csv")

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestImportLocatesColumnsByName(t *testing.T) {
	input := "last_name,first_name,phones\nfranko,ivan,mobile:12345\n"

	contacts, err := Import(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, "Ivan", c.FirstName)
	assert.Equal(t, "Franko", c.LastName)
	assert.Equal(t, map[string]string{"mobile": "12345"}, c.Phones)
	assert.Empty(t, c.City)
	assert.NotEmpty(t, c.ID, "missing id is generated")
	assert.NotEmpty(t, c.CreatedAt, "missing created_at is generated")
}

func TestImportShortRow(t *testing.T) {
	input := "id,first_name,last_name,phones,city\n7,a\n"

	contacts, err := Import(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "7", contacts[0].ID)
	assert.Empty(t, contacts[0].City)
}

func TestImportNoHeader(t *testing.T) {
	_, err := Import(strings.NewReader(""))

	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(afero.NewMemMapFs(), "nope.csv")

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDecodePhones(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"single", "mobile:12345", map[string]string{"mobile": "12345"}},
		{"several trimmed", " mobile : 12345 ;home:55555", map[string]string{"mobile": "12345", "home": "55555"}},
		{"entry without colon ignored", "12345; home:55555", map[string]string{"home": "55555"}},
		{"colon in number kept", "ext:1:2", map[string]string{"ext": "1:2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodePhones(tt.input))
		})
	}
}

func TestEncodePhonesSorted(t *testing.T) {
	got := EncodePhones(map[string]string{"work": "3", "home": "1", "mobile": "2"})

	assert.Equal(t, "home:1; mobile:2; work:3", got)
}
