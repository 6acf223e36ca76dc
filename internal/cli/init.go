package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize phonebook storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nand initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Phonebook initialized")
			fmt.Fprintf(out, "config: %s\ndata:   %s\nbackend: %s\n", s.configDir, s.dataDir, s.settings.Backend)
			return nil
		},
	}
}
