package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/sknn/internal/backup"
	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/keyring"
	"github.com/julianstephens/sknn/internal/logger"
	"github.com/julianstephens/sknn/internal/models"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/storage"
	"github.com/julianstephens/sknn/internal/storage/postgres"
	"github.com/julianstephens/sknn/internal/storage/sqlite"
)

type Context struct {
	Provider storage.Provider
	Out      io.Writer
	In       io.Reader

	// Options are applied when the routine store is first opened.
	Options []routine.Option

	store *routine.Store
}

func NewContext(provider storage.Provider, opts ...routine.Option) *Context {
	return &Context{
		Provider: provider,
		Out:      os.Stdout,
		In:       os.Stdin,
		Options:  opts,
	}
}

// Routines loads storage and the routine list on first use.
func (c *Context) Routines() (*routine.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	if err := c.Provider.Load(); err != nil {
		return nil, err
	}
	store := routine.New(c.Provider, c.Options...)
	if _, err := store.Initialize(); err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// Reset forgets the open routine store, e.g. after the database file was replaced.
func (c *Context) Reset() {
	c.store = nil
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup snapshots SQLite storage. Failures are logged, never returned.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Provider.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Provider.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveConfig decides where data lives. SKNN_DB_CONNECTION wins; otherwise a
// connection string saved in the keyring replaces the default path.
func ResolveConfig(config string) string {
	if env := strings.TrimSpace(os.Getenv(constants.ConnectionEnvVar)); env != "" {
		logger.Debug("Using connection string from environment")
		return env
	}
	if config == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			logger.Debug("Using connection string from keyring")
			return connStr
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	return config
}

// OpenStore picks a storage provider for config:
// postgres:// or postgresql:// is PostgreSQL, :memory: is in-process,
// *.json is a JSON document, anything else is a SQLite file.
// trusted is false for values typed on the command line, which may not carry a password.
func OpenStore(config string, trusted bool) (storage.Provider, error) {
	config = strings.TrimSpace(config)
	switch {
	case config == "":
		return nil, errors.New("config path cannot be empty")
	case postgres.IsConnString(config) || strings.Contains(config, "host="):
		if !trusted {
			if _, err := postgres.ValidateConnString(config); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w; store it with 'sknn keyring set' or export %s instead",
						err, constants.ConnectionEnvVar)
				}
				return nil, err
			}
		}
		return postgres.New(config), nil
	case config == constants.MemoryConfig:
		return storage.NewMemoryStore(), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// FindRoutine resolves a full id or a unique id prefix against items.
func FindRoutine(items []models.RoutineItem, ref string) (models.RoutineItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.RoutineItem{}, fmt.Errorf("%w: empty id", routine.ErrNotFound)
	}

	var matches []models.RoutineItem
	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
		if strings.HasPrefix(item.ID, ref) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return models.RoutineItem{}, fmt.Errorf("%w: %s", routine.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.RoutineItem{}, fmt.Errorf("%w: %s is ambiguous (%d matches)", routine.ErrNotFound, ref, len(matches))
	}
}

// ShortID is the display form of an id in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
