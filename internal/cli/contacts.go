package cli

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const defaultPhoneLabel = "mobile"

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			return printContacts(cmd.OutOrStdout(), book.Contacts(), a.flags.jsonMode)
		},
	}
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			c, ok := book.FindByID(args[0])
			if !ok {
				return userError("contact %q not found", args[0])
			}
			return printContact(cmd.OutOrStdout(), c, a.flags.jsonMode)
		},
	}
}

type contactFlags struct {
	first, last, phone, label, city, job string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.first, "first", "", "first name")
	cmd.Flags().StringVar(&f.last, "last", "", "last name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number, digits only")
	cmd.Flags().StringVar(&f.label, "label", defaultPhoneLabel, "phone label")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.job, "job", "", "job title")
}

func (a *app) newAddCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Example: `  phonebook add --first Lesya --last Ukrainka --phone 12345
  phonebook add --first ivan --last franko --phone 55555 --label home --city lviv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !types.ValidPhone(f.phone) {
				return userError("invalid phone number %q", f.phone)
			}
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			c := types.NewContact(f.first, f.last, map[string]string{f.label: f.phone},
				types.WithCity(f.city), types.WithJob(f.job))
			ok, err := book.Add(c)
			if err != nil {
				return sysError(err)
			}
			if !ok {
				return userError("contact %q already exists", c.ID)
			}
			if a.flags.jsonMode {
				return printContact(cmd.OutOrStdout(), c, true)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact added: %s\n", c.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			ok, err := book.Delete(args[0])
			if err != nil {
				return sysError(err)
			}
			if !ok {
				return userError("contact %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact deleted: %s\n", args[0])
			return nil
		},
	}
}

func (a *app) newUpdateCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a contact",
		Long: "Update overwrites the given fields. Names, city and job are capitalized.\n" +
			"--phone sets the number under --label and keeps the other numbers.",
		Example: `  phonebook update 0191d3c2-... --city lviv
  phonebook update 0191d3c2-... --phone 55555 --label home`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			flags := cmd.Flags()
			if flags.Changed("phone") && !types.ValidPhone(f.phone) {
				return userError("invalid phone number %q", f.phone)
			}

			var u types.ContactUpdate
			setText := func(name string, value string, field **string) {
				if flags.Changed(name) {
					v := types.Capitalize(value)
					*field = &v
				}
			}
			setText("first", f.first, &u.FirstName)
			setText("last", f.last, &u.LastName)
			setText("city", f.city, &u.City)
			setText("job", f.job, &u.Job)

			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			current, ok := book.FindByID(id)
			if !ok {
				return userError("contact %q not found", id)
			}
			if flags.Changed("phone") {
				u.Phones = maps.Clone(current.Phones)
				u.Phones[f.label] = f.phone
			}
			if u.IsEmpty() {
				return userError("nothing to update")
			}

			if ok, err = book.Update(id, u); err != nil {
				return sysError(err)
			}
			if !ok {
				return userError("contact %q not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contact updated: %s\n", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
