package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "runcond",
	Short: "The runcond CLI inspects verdict recordings produced by " +
		"condition-gated schedulers.",
	Long: `The runcond CLI inspects verdict recordings produced by ` +
		`condition-gated schedulers. It lists recorded tables, evaluation ` +
		`verdicts, and per-condition permit statistics.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadEnvFile)

	rootCmd.PersistentFlags().String(
		"db", "",
		"Path of the recording database. "+
			"Defaults to the RUNCOND_DB environment variable.")
}

// loadEnvFile reads a .env file when one is present so that RUNCOND_DB can
// be set per project.
func loadEnvFile() {
	_ = godotenv.Load()
}

func dbPathFromFlags(cmd *cobra.Command) string {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = os.Getenv("RUNCOND_DB")
	}

	if dbPath == "" {
		fmt.Fprintln(os.Stderr,
			"Error: no database given. Use --db or set RUNCOND_DB.")
		os.Exit(1)
	}

	return dbPath
}
