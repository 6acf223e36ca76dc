package cli

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/csvio"
	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const menuText = `
PHONE BOOK MENU
1. Show all contacts
2. Add contact
3. Search by last name
4. Search by phone
5. Delete contact
6. Import from CSV
7. Export to CSV
8. Update contact
q. Exit`

func (a *app) newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runMenu,
	}
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	book, err := a.phoneBook()
	if err != nil {
		return err
	}
	m := &menu{
		book: book,
		fs:   a.fs,
		in:   bufio.NewScanner(cmd.InOrStdin()),
		out:  cmd.OutOrStdout(),
	}
	m.run()
	return nil
}

// menu is the interactive loop. Every failure is reported and the loop
// continues; end of input quits.
type menu struct {
	book *phonebook.PhoneBook
	fs   afero.Fs
	in   *bufio.Scanner
	out  io.Writer
}

func (m *menu) run() {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Choose action: ")
		if !ok {
			fmt.Fprintln(m.out)
			return
		}
		switch choice {
		case "1":
			m.show(m.book.Contacts())
		case "2":
			m.add()
		case "3":
			if q, ok := m.prompt("Last name: "); ok {
				m.show(m.book.SearchByLastName(q))
			}
		case "4":
			if q, ok := m.prompt("Phone: "); ok {
				m.show(m.book.SearchByPhone(q))
			}
		case "5":
			m.delete()
		case "6":
			m.importCSV()
		case "7":
			m.exportCSV()
		case "8":
			m.update()
		case "q":
			return
		default:
			fmt.Fprintln(m.out, "Unknown action")
		}
	}
}

// prompt prints label and reads one trimmed line. It returns false at end
// of input.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) fail(err error) {
	fmt.Fprintln(m.out, "Error:", err)
}

func (m *menu) show(contacts []*types.Contact) {
	_ = printContacts(m.out, contacts, false)
}

func (m *menu) add() {
	first, ok := m.prompt("First name: ")
	if !ok {
		return
	}
	last, ok := m.prompt("Last name: ")
	if !ok {
		return
	}
	phone, ok := m.prompt("Phone: ")
	if !ok {
		return
	}
	if !types.ValidPhone(phone) {
		fmt.Fprintln(m.out, "Invalid phone number")
		return
	}
	city, ok := m.prompt("City: ")
	if !ok {
		return
	}
	job, ok := m.prompt("Job: ")
	if !ok {
		return
	}

	c := types.NewContact(first, last, map[string]string{defaultPhoneLabel: phone},
		types.WithCity(city), types.WithJob(job))
	added, err := m.book.Add(c)
	switch {
	case err != nil:
		m.fail(err)
	case !added:
		fmt.Fprintln(m.out, "Contact already exists")
	default:
		fmt.Fprintf(m.out, "Contact added: %s\n", c.ID)
	}
}

func (m *menu) delete() {
	id, ok := m.prompt("Contact ID: ")
	if !ok {
		return
	}
	deleted, err := m.book.Delete(id)
	switch {
	case err != nil:
		m.fail(err)
	case !deleted:
		fmt.Fprintln(m.out, "Contact not found")
	default:
		fmt.Fprintln(m.out, "Contact deleted")
	}
}

// update prompts for each editable field showing the current value. An
// empty answer keeps it.
func (m *menu) update() {
	id, ok := m.prompt("Contact ID: ")
	if !ok {
		return
	}
	c, found := m.book.FindByID(id)
	if !found {
		fmt.Fprintln(m.out, "Contact not found")
		return
	}

	var u types.ContactUpdate
	fields := []struct {
		label   string
		current string
		target  **string
	}{
		{"First name", c.FirstName, &u.FirstName},
		{"Last name", c.LastName, &u.LastName},
		{"City", c.City, &u.City},
		{"Job", c.Job, &u.Job},
	}
	for _, f := range fields {
		answer, ok := m.prompt(fmt.Sprintf("%s [%s]: ", f.label, f.current))
		if !ok {
			return
		}
		if answer != "" {
			v := types.Capitalize(answer)
			*f.target = &v
		}
	}
	phone, ok := m.prompt(fmt.Sprintf("Phone [%s]: ", c.Phones[defaultPhoneLabel]))
	if !ok {
		return
	}
	if phone != "" {
		if !types.ValidPhone(phone) {
			fmt.Fprintln(m.out, "Invalid phone number")
			return
		}
		u.Phones = maps.Clone(c.Phones)
		u.Phones[defaultPhoneLabel] = phone
	}
	if u.IsEmpty() {
		fmt.Fprintln(m.out, "Nothing to update")
		return
	}

	if _, err := m.book.Update(id, u); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintln(m.out, "Contact updated")
}

func (m *menu) importCSV() {
	path, ok := m.prompt("CSV file: ")
	if !ok {
		return
	}
	res, err := importCSV(m.fs, m.book, path)
	if err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Imported %d contacts, skipped %d\n", res.Added, res.Skipped)
}

func (m *menu) exportCSV() {
	path, ok := m.prompt("CSV file: ")
	if !ok {
		return
	}
	if err := csvio.ExportFile(m.fs, path, m.book.Contacts()); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Exported %d contacts to %s\n", m.book.Len(), path)
}
