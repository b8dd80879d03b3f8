package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/quangnv/habitkit/internal/cli"
	"github.com/quangnv/habitkit/internal/constants"
	"github.com/quangnv/habitkit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/habitkit/habitkit.db"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habitkit storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	List   cli.ListCmd   `cmd:"" help:"List habits."`
	Add    cli.AddCmd    `cmd:"" help:"Add a new habit."`
	Edit   cli.EditCmd   `cmd:"" help:"Edit an existing habit."`
	Done   cli.DoneCmd   `cmd:"" help:"Toggle a habit's done-today status."`
	Rm     cli.RmCmd     `cmd:"" help:"Remove a habit (soft delete)."`
	Show   cli.ShowCmd   `cmd:"" help:"Show a single habit, deleted or not."`
	Import cli.ImportCmd `cmd:"" help:"Import sample habits from a remote endpoint."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a database backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitkit"),
		kong.Description("Daily habit tracker with local storage and remote sample import"),
		kong.UsageOnError(),
		kong.Vars{
			"version":    "v0.1.0",
			"import_url": constants.DefaultImportURL,
		},
	)

	// A .json config path selects the plain-file store; anything else gets
	// SQLite.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	appCtx := &cli.Context{
		Store: store,
	}

	err := ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
