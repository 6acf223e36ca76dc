// Package cli implements the phonebook command-line interface: one-shot
// subcommands for scripting and an interactive menu for everything else.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	jsonMode  bool
}

// app carries the state shared by one command invocation.
type app struct {
	flags rootFlags
	fs    afero.Fs
	sess  *session
}

// NewRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered. Without a subcommand it starts the menu.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{fs: afero.NewOsFs()})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "phonebook",
		Short: "Manage personal contacts",
		Long: "Phonebook stores contacts in a JSON file (or SQLite database) with a\n" +
			"timestamped backup before every write, and supports fuzzy search and\n" +
			"CSV import/export.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runMenu,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/phonebook)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/data)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json, sqlite or memory (default from config)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		a.newMenuCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newAddCmd(),
		a.newDeleteCmd(),
		a.newUpdateCmd(),
		a.newSearchCmd(),
		a.newImportCmd(),
		a.newExportCmd(),
		a.newBackupsCmd(),
		a.newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	a := &app{fs: afero.NewOsFs()}
	code := run(newRootCmd(a), os.Args[1:], os.Stderr)
	if err := a.close(); err != nil && code == exitSuccess {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code = exitSysError
	}
	os.Exit(code)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

// codedError carries the process exit code for an error.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// userError reports bad input or a missing contact.
func userError(format string, args ...any) error {
	return &codedError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysError reports a storage or configuration failure.
func sysError(err error) error {
	return &codedError{code: exitSysError, err: err}
}

// exitCode maps err to a process exit code. Errors without a code come from
// cobra argument parsing and count as user errors.
func exitCode(err error) int {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
