package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/storage"
	"github.com/julianstephens/sknn/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database file before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}

	store := routine.New(ctx.Provider, ctx.Options...)
	items, err := store.Initialize()
	if err != nil {
		return err
	}

	ctx.Printf("Initialized sknn storage at: %s\n", ctx.Provider.GetConfigPath())
	ctx.Printf("%d routines ready. Run 'sknn' to start tracking.\n", len(items))
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	switch ctx.Provider.(type) {
	case *postgres.Store:
		return fmt.Errorf("--force is not supported for PostgreSQL storage")
	case *storage.MemoryStore:
		return nil
	}

	path := ctx.Provider.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Provider.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Reset()
	ctx.Printf("Deleted existing database at: %s\n", path)
	return nil
}
