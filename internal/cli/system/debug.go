package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/sknn/internal/cli"
	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/routine"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show storage location."`
	DumpRoutines *DebugDumpRoutinesCmd `cmd:"" help:"Dump the stored routine list as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Provider.GetConfigPath(),
	}
	return printJSON(ctx, output)
}

// DebugDumpRoutinesCmd prints the persisted list as stored, without applying rollover.
type DebugDumpRoutinesCmd struct{}

func (cmd *DebugDumpRoutinesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	raw, ok, err := ctx.Provider.Get(constants.RoutinesKey)
	if err != nil {
		return fmt.Errorf("failed to read routines: %w", err)
	}
	if !ok {
		return fmt.Errorf("no routines stored yet, run 'sknn init'")
	}

	items, err := routine.Decode(raw)
	if err != nil {
		return fmt.Errorf("stored routines are malformed: %w", err)
	}
	return printJSON(ctx, items)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
