package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/cli/backups"
	"github.com/julianstephens/sknn/internal/cli/routines"
	"github.com/julianstephens/sknn/internal/cli/system"
	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/errors"
	"github.com/julianstephens/sknn/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file (.db or .json), ':memory:', or a PostgreSQL connection string without a password. Supply PostgreSQL passwords via SKNN_DB_CONNECTION, .pgpass, or 'sknn keyring set'." type:"string" default:"~/.config/sknn/sknn.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize storage and seed the default routine."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	List     routines.ListCmd     `cmd:"" help:"List today's routines."`
	Add      routines.AddCmd      `cmd:"" help:"Add a routine step."`
	Done     routines.DoneCmd     `cmd:"" help:"Toggle a routine step done or not done."`
	Delete   routines.DeleteCmd   `cmd:"" help:"Delete a routine step."`
	Reset    routines.ResetCmd    `cmd:"" help:"Mark every routine step not done."`
	Progress routines.ProgressCmd `cmd:"" help:"Show today's progress."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Apply pending database migrations."`
	Inspect  system.DebugCmd      `cmd:"" name:"debug" help:"Debugging helpers."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily skincare routine tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := cli.ResolveConfig(CLI.Config)
	store, err := cli.OpenStore(config, config != CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(store.GetConfigPath())}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer store.Close()

	err = ctx.Run(cli.NewContext(store))
	if err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// logDir keeps logs next to file-backed storage and under the default config dir otherwise.
func logDir(storePath string) string {
	if filepath.IsAbs(storePath) {
		return filepath.Dir(storePath)
	}
	if dir, err := cli.ExpandHome(filepath.Dir(constants.DefaultConfigPath)); err == nil {
		return dir
	}
	return filepath.Join(".", "."+constants.AppName)
}
