package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/csvio"
	"github.com/mesh-intelligence/phonebook/internal/phonebook"
)

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import contacts from CSV",
		Long: "Import reads id,first_name,last_name,phones,city,job,created_at columns.\n" +
			"Contacts whose ID already exists are skipped. Any invalid row rejects the\n" +
			"whole file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			res, err := importCSV(a.fs, book, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts, skipped %d\n", res.Added, res.Skipped)
			return nil
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export all contacts to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.phoneBook()
			if err != nil {
				return err
			}
			if err := csvio.ExportFile(a.fs, args[0], book.Contacts()); err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contacts to %s\n", book.Len(), args[0])
			return nil
		},
	}
}

func (a *app) newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups of the data file, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			var backups []string
			if bl, ok := s.repo.(backupLister); ok {
				if backups, err = bl.Backups(); err != nil {
					return sysError(fmt.Errorf("list backups: %w", err))
				}
			}
			return printBackups(cmd.OutOrStdout(), backups, a.flags.jsonMode)
		},
	}
}

func printBackups(w io.Writer, backups []string, jsonMode bool) error {
	if jsonMode {
		if backups == nil {
			backups = []string{}
		}
		return writeJSON(w, backups)
	}
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups found")
		return nil
	}
	for _, b := range backups {
		fmt.Fprintln(w, b)
	}
	return nil
}

// importCSV reads path and imports it into book, classifying failures by
// exit code.
func importCSV(fsys afero.Fs, book *phonebook.PhoneBook, path string) (phonebook.ImportResult, error) {
	contacts, err := csvio.ImportFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return phonebook.ImportResult{}, userError("file %s not found", path)
		}
		return phonebook.ImportResult{}, userError("%w", err)
	}
	res, err := book.Import(contacts)
	if err != nil {
		var ie *phonebook.ImportError
		if errors.As(err, &ie) {
			return res, userError("%w", err)
		}
		return res, sysError(err)
	}
	return res, nil
}
