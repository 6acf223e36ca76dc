package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search contacts by last name or phone",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "lastname <query>",
			Short: "Fuzzy search by last name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				book, err := a.phoneBook()
				if err != nil {
					return err
				}
				return printContacts(cmd.OutOrStdout(), book.SearchByLastName(args[0]), a.flags.jsonMode)
			},
		},
		&cobra.Command{
			Use:   "phone <query>",
			Short: "Search by part of a phone number",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				book, err := a.phoneBook()
				if err != nil {
					return err
				}
				return printContacts(cmd.OutOrStdout(), book.SearchByPhone(args[0]), a.flags.jsonMode)
			},
		},
	)
	return cmd
}
