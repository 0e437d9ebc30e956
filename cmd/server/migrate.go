package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simaset/internal/config"
	"simaset/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the activity log schema",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE:      runMigrate,
}

func runMigrate(_ *cobra.Command, args []string) error {
	dir := database.Direction(args[0])
	if dir != database.Up && dir != database.Down {
		return fmt.Errorf("unknown direction %q, want up or down", args[0])
	}

	cfg, err := config.LoadDatabase(envFiles()...)
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(db, dir)
}
