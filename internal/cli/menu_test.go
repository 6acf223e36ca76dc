package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(input ...string) string {
	return strings.Join(input, "\n") + "\n"
}

func TestMenuAddAndShow(t *testing.T) {
	e := newEnv(t)

	res := e.run(lines("2", "lesya", "ukrainka", "12345", "kyiv", "", "1", "q"))

	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "PHONE BOOK MENU")
	assert.Contains(t, res.stdout, "Contact added: ")
	assert.Contains(t, res.stdout, "Name: Lesya Ukrainka\nPhones: mobile: 12345\nCity: Kyiv\nJob: \n")
	assert.Len(t, e.list("list"), 1)
}

func TestMenuAddInvalidPhone(t *testing.T) {
	e := newEnv(t)

	res := e.run(lines("2", "a", "b", "12", "q"))

	require.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "Invalid phone number")
	assert.Empty(t, e.list("list"))
}

func TestMenuEndOfInputQuits(t *testing.T) {
	e := newEnv(t)

	res := e.run("")

	assert.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "Choose action: ")
}

func TestMenuMenuSubcommand(t *testing.T) {
	e := newEnv(t)

	res := e.run(lines("q"), "menu")

	assert.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "8. Update contact")
}

func TestMenuUnknownAction(t *testing.T) {
	e := newEnv(t)

	res := e.run(lines("9", "q"))

	assert.Contains(t, res.stdout, "Unknown action")
}

func TestMenuSearch(t *testing.T) {
	e := newEnv(t)
	e.add("lesya", "ukrainka", "12345")
	e.add("ivan", "franko", "987654")

	res := e.run(lines("3", "ukrain", "4", "876", "q"))

	require.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "Name: Lesya Ukrainka")
	assert.Contains(t, res.stdout, "Name: Ivan Franko")
}

func TestMenuDelete(t *testing.T) {
	e := newEnv(t)
	rec := e.add("lesya", "ukrainka", "12345")

	res := e.run(lines("5", "999", "5", rec.ID, "q"))

	assert.Contains(t, res.stdout, "Contact not found")
	assert.Contains(t, res.stdout, "Contact deleted")
	assert.Empty(t, e.list("list"))
}

func TestMenuUpdate(t *testing.T) {
	e := newEnv(t)
	rec := e.add("lesya", "ukrainka", "12345", "--city", "kyiv")

	res := e.run(lines("8", rec.ID, "", "", "lviv", "poet", "", "q"))

	require.Equal(t, exitSuccess, res.code)
	assert.Contains(t, res.stdout, "City [Kyiv]: ")
	assert.Contains(t, res.stdout, "Contact updated")
	recs := e.list("list")
	require.Len(t, recs, 1)
	assert.Equal(t, "Lesya", recs[0].FirstName)
	assert.Equal(t, "Lviv", recs[0].City)
	assert.Equal(t, "Poet", recs[0].Job)
}

func TestMenuUpdateNotFound(t *testing.T) {
	e := newEnv(t)

	res := e.run(lines("8", "999", "q"))

	assert.Contains(t, res.stdout, "Contact not found")
}

func TestMenuUpdateNothing(t *testing.T) {
	e := newEnv(t)
	rec := e.add("lesya", "ukrainka", "12345")

	res := e.run(lines("8", rec.ID, "", "", "", "", "", "q"))

	assert.Contains(t, res.stdout, "Nothing to update")
}

func TestMenuExportImport(t *testing.T) {
	src := newEnv(t)
	src.add("lesya", "ukrainka", "12345")
	csvPath := filepath.Join(t.TempDir(), "out.csv")

	res := src.run(lines("7", csvPath, "q"))
	require.Contains(t, res.stdout, "Exported 1 contacts to "+csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,first_name,last_name,phones,city,job,created_at\n"))

	dst := newEnv(t)
	res = dst.run(lines("6", csvPath, "6", filepath.Join(t.TempDir(), "nope.csv"), "q"))
	assert.Contains(t, res.stdout, "Imported 1 contacts, skipped 0")
	assert.Contains(t, res.stdout, "Error: file ")
	assert.Len(t, dst.list("list"), 1)
}
