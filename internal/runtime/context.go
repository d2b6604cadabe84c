// Package runtime wires configuration, the storage backend and the engines
// built on it into the context shared by CLI commands.
package runtime

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/manav03panchal/lifeledger/internal/backup"
	"github.com/manav03panchal/lifeledger/internal/config"
	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/logging"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/stats"
	"github.com/manav03panchal/lifeledger/internal/storage"
)

// EnvDatabase overrides the database location. ":memory:" opens a
// throwaway in-memory store.
const EnvDatabase = "LIFELEDGER_DATABASE"

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	KV        storage.KV
	Store     *storage.Store
	Stats     *stats.Engine
	Backup    *backup.Engine
	Formatter *output.Formatter

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	ConfigDir string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	// Writer receives command output. Defaults to stdout.
	Writer io.Writer
	// Clock overrides the store clock.
	Clock func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		ConfigDir: config.DefaultConfigDir(),
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New loads configuration, opens the configured backend and builds the
// store and engines.
func New(opts Options) (*Context, error) {
	if opts.ConfigDir == "" {
		opts.ConfigDir = config.DefaultConfigDir()
	}

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return nil, errors.NewUserError(err.Error(), "Fix config.yaml or the LIFELEDGER_* environment variables.")
	}
	initLogging(cfg, opts.Debug)

	path := cfg.DBPath()
	if env := os.Getenv(EnvDatabase); env == ":memory:" {
		opts.InMemory = true
	} else if env != "" {
		path = env
	}

	kv, err := openKV(cfg.Backend, path, opts.InMemory)
	if err != nil {
		return nil, err
	}

	storeOpts := []storage.Option{
		storage.WithFinanceLogCap(cfg.FinanceLogCap),
		storage.WithRecentSearchCap(cfg.RecentSearchCap),
	}
	if opts.Clock != nil {
		storeOpts = append(storeOpts, storage.WithClock(opts.Clock))
	}
	st := storage.NewStore(kv, storeOpts...)

	if st.IsFirstLaunch() {
		if err := seedSettings(st, cfg); err != nil {
			kv.Close()
			return nil, err
		}
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	formatter.Currency = st.Settings.Get().Currency
	formatter.Now = st.Now
	if opts.Writer != nil {
		formatter.Writer = opts.Writer
	}

	logging.DebugLog("runtime ready",
		logging.KeyBackend, cfg.Backend,
		logging.KeyPath, path,
		"in_memory", opts.InMemory)

	return &Context{
		Config:    cfg,
		KV:        kv,
		Store:     st,
		Stats:     stats.New(st, stats.WithRecentTransactions(cfg.RecentTransactions)),
		Backup:    backup.New(st),
		Formatter: formatter,
		Debug:     opts.Debug,
	}, nil
}

func initLogging(cfg *config.Config, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		JSON:   cfg.LogJSON,
		Output: os.Stderr,
	})
}

// openKV opens the backend named by cfg. Open failures are classified so the
// user sees a lock, permission or corruption message instead of a raw error.
func openKV(backend, path string, inMemory bool) (storage.KV, error) {
	if !inMemory {
		if warn := storage.DiskSpaceWarning(filepath.Dir(path)); warn != "" {
			logging.Warn(warn, logging.KeyPath, path)
		}
	}

	switch backend {
	case config.BackendSQLite:
		if inMemory {
			path = ":memory:"
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, openError(err, path)
		}
		return db, nil
	default:
		db, err := storage.Open(storage.Options{Path: path, InMemory: inMemory})
		if err != nil {
			return nil, openError(err, path)
		}
		return db, nil
	}
}

// seedSettings copies configured defaults into the stored settings on the
// first run against a fresh store.
func seedSettings(st *storage.Store, cfg *config.Config) error {
	settings := st.Settings.Get()
	if cfg.Currency != "" {
		settings.Currency = cfg.Currency
	}
	if err := st.Settings.Save(settings); err != nil {
		return err
	}
	return st.MarkLaunched()
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Now returns the store's current time.
func (c *Context) Now() time.Time {
	return c.Store.Now()
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
