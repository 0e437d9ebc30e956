package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "simaset",
	Short: "SIM ASET YPCU admin front-end",
	Long: `Server-rendered admin front-end for the SIM ASET YPCU asset API.

Available subcommands:
  serve   - Run the web server (default)
  migrate - Apply or roll back the activity log schema`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file read before the environment (default .env when present)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// envFiles is the explicit --env-file, or nothing so that config falls back
// to an optional .env.
func envFiles() []string {
	if envFile == "" {
		return nil
	}
	return []string{envFile}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
