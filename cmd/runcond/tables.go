package main

import (
	"database/sql"
	"fmt"
	"log"

	// SQLite driver for reading recording databases.
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables in a recording database.",
	Run: func(cmd *cobra.Command, _ []string) {
		dbPath := dbPathFromFlags(cmd)

		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			log.Fatalf("Error opening database: %v", err)
		}
		defer db.Close()

		rows, err := db.Query(
			"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
		if err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				log.Fatalf("Error reading table name: %v", err)
			}

			fmt.Println(name)
		}

		if err := rows.Err(); err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
