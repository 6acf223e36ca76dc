package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mesh-intelligence/phonebook/internal/config"
	"github.com/mesh-intelligence/phonebook/internal/jsonstore"
	"github.com/mesh-intelligence/phonebook/internal/logger"
	"github.com/mesh-intelligence/phonebook/internal/memory"
	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/internal/phonebook"
	"github.com/mesh-intelligence/phonebook/internal/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// session is the resolved configuration and open storage for one command.
type session struct {
	configDir string
	dataDir   string
	settings  config.Settings
	logger    *slog.Logger
	repo      types.ContactRepository
	closeRepo func() error
	book      *phonebook.PhoneBook
}

// backupLister is implemented by backends that keep backups.
type backupLister interface {
	Backups() ([]string, error)
}

// open resolves directories and configuration, builds the logger and opens
// the repository. It is cached for the lifetime of the command.
func (a *app) open() (*session, error) {
	if a.sess != nil {
		return a.sess, nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := config.Load(configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("load config: %w", err))
	}
	settings := config.FromViper(v)
	if a.flags.backend != "" {
		settings.Backend = a.flags.backend
	}
	if a.flags.logLevel != "" {
		settings.LogLevel = a.flags.logLevel
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, settings.DataDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	log := logger.New(&logger.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		File:   settings.LogPath(dataDir),
	})

	cfg := types.Config{Backend: settings.Backend, DataDir: dataDir, DataFile: settings.DataFile}
	repo, closeRepo, err := openRepository(a.fs, cfg, log)
	if err != nil {
		return nil, sysError(err)
	}

	a.sess = &session{
		configDir: configDir,
		dataDir:   dataDir,
		settings:  settings,
		logger:    log,
		repo:      repo,
		closeRepo: closeRepo,
	}
	return a.sess, nil
}

// phoneBook returns the service for this command, loading it on first use.
func (a *app) phoneBook() (*phonebook.PhoneBook, error) {
	s, err := a.open()
	if err != nil {
		return nil, err
	}
	if s.book == nil {
		book, err := phonebook.New(s.repo, s.logger)
		if err != nil {
			return nil, sysError(err)
		}
		s.book = book
	}
	return s.book, nil
}

func (a *app) close() error {
	if a.sess == nil || a.sess.closeRepo == nil {
		return nil
	}
	err := a.sess.closeRepo()
	a.sess = nil
	if err != nil {
		return sysError(fmt.Errorf("close storage: %w", err))
	}
	return nil
}

// openRepository builds the backend named by cfg.Backend. The returned
// close function may be nil.
func openRepository(fs afero.Fs, cfg types.Config, log *slog.Logger) (types.ContactRepository, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		b, err := sqlite.Open(sqlite.DBPath(cfg.DataDir, cfg.File()), sqlite.WithLogger(log))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return b, b.Close, nil
	case types.BackendMemory:
		return memory.New(), nil, nil
	default:
		path := filepath.Join(cfg.DataDir, cfg.File())
		return jsonstore.New(fs, path, jsonstore.WithLogger(log)), nil, nil
	}
}
