package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/sknn/internal/backup"
	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/migration"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/storage"
	"github.com/julianstephens/sknn/internal/storage/postgres"
	"github.com/julianstephens/sknn/internal/storage/sqlite"
	"github.com/julianstephens/sknn/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Routine data", needsDB: true, run: checkRoutineData},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, _, err := ctx.Provider.Get(constants.RoutinesKey); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func migrationRunner(p storage.Provider) (*migration.Runner, error) {
	switch s := p.(type) {
	case *sqlite.Store:
		return s.MigrationRunner()
	case *postgres.Store:
		return s.MigrationRunner()
	}
	return nil, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx.Provider)
	if err != nil || runner == nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("database schema version (%d) is behind (%d), run 'sknn init' to migrate", current, latest)
	}
	return nil
}

// checkRoutineData decodes the stored list without the store's fallback to defaults.
func checkRoutineData(ctx *cli.Context) error {
	raw, ok, err := ctx.Provider.Get(constants.RoutinesKey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no routines stored yet, run 'sknn init'")
	}
	items, err := routine.Decode(raw)
	if err != nil {
		return fmt.Errorf("%w (the list will be replaced with defaults on next start)", err)
	}
	for _, item := range items {
		if item.LastCompletedDate != nil && !utils.ValidateDateFormat(*item.LastCompletedDate) {
			return fmt.Errorf("routine %s has an unrecognized completion date %q", item.ID, *item.LastCompletedDate)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Provider.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Provider.GetConfigPath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'sknn backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(_ *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local timezone configured")
	}
	today := utils.Today()
	if _, err := utils.ParseDate(today); err != nil {
		return fmt.Errorf("failed to derive today's date: %w", err)
	}
	return nil
}
