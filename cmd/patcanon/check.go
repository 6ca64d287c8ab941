package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/funvibe/patcanon/internal/config"
	"github.com/funvibe/patcanon/internal/pipeline"
	"github.com/funvibe/patcanon/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check <unit.yaml>",
	Short: "Canonicalize every pattern of a unit file",
	Long:  "Loads a unit file, canonicalizes its patterns in their contexts, prints the canonical forms, bindings and diagnostics, and optionally stores the run.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !config.IsUnitFile(path) {
		return fmt.Errorf("%s: not a unit file (want %v)", path, config.UnitFileExtensions)
	}
	logger := newLogger()

	ctx := pipeline.NewContext(path, logger)
	if dbPath := resolveDBPath(); dbPath != "" {
		store, err := openStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		ctx.Store = store
	}

	ctx = pipeline.Default().Run(ctx)

	for _, err := range ctx.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	if ctx.Unit == nil {
		errorHandled = true
		return errProblems
	}

	var err error
	if flagFormat == config.FormatYAML {
		err = writeYAML(os.Stdout, ctx)
	} else {
		err = writeText(os.Stdout, report.NewRenderer(os.Stdout), ctx)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if ctx.RunID != 0 {
		fmt.Fprintf(os.Stderr, "Stored run %d in %s\n", ctx.RunID, resolveDBPath())
	}
	if ctx.HasProblems() {
		return errProblems
	}
	return nil
}

func openStore(dbPath string) (*report.Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	store, err := report.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

var flagRun int64

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "List the diagnostics of a stored run",
	Args:  cobra.NoArgs,
	RunE:  runDiagnostics,
}

func init() {
	diagnosticsCmd.Flags().Int64Var(&flagRun, "run", 0, "run id (default: latest run)")
}

func runDiagnostics(cmd *cobra.Command, args []string) error {
	dbPath := resolveDBPath()
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no report database at %s: %w", dbPath, err)
	}
	store, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := findRun(store, flagRun)
	if err != nil {
		return err
	}
	ds, err := store.Diagnostics(run.ID)
	if err != nil {
		return err
	}

	if flagFormat == config.FormatYAML {
		return writeStoredYAML(os.Stdout, run, ds)
	}
	fmt.Fprintf(os.Stdout, "run %d: %s (%s) at %s\n", run.ID, run.Module, run.File, run.CreatedAt.Format("2006-01-02 15:04:05"))
	return report.NewRenderer(os.Stdout).Stored(ds)
}

func findRun(store *report.Store, id int64) (*report.Run, error) {
	var run *report.Run
	var err error
	if id == 0 {
		run, err = store.LatestRun()
	} else {
		run, err = store.Run(id)
	}
	if err != nil {
		return nil, err
	}
	if run == nil {
		if id == 0 {
			return nil, fmt.Errorf("no runs stored")
		}
		return nil, fmt.Errorf("run %d not found", id)
	}
	return run, nil
}
