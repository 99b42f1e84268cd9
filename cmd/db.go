package cmd

import (
	"fmt"

	"journal-locations/core/config"
	"journal-locations/core/database"

	"github.com/spf13/cobra"
)

// dbCmd is the parent command for database inspection.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the application database",
}

// dbColumnsCmd prints the schema of one of the engine's tables.
var dbColumnsCmd = &cobra.Command{
	Use:   "columns [table]",
	Short: "Show the column definitions of a table",
	Long: `Prints the normalized column definitions of a table, useful for checking
what a migration actually produced.

Examples:
  db columns locations
  db columns entries
  db columns ignored_location_pairs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		columns, err := database.GetTableColumns(db, args[0])
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			fmt.Printf("Table %s has no columns (does it exist?).\n", args[0])
			return nil
		}

		fmt.Printf("%-20s %-15s %s\n", "FIELD", "TYPE", "DEFAULT")
		for _, col := range columns {
			def := ""
			if col.Default != nil {
				def = *col.Default
			}
			fmt.Printf("%-20s %-15s %s\n", col.Field, col.Type, def)
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbColumnsCmd)
	RootCmd.AddCommand(dbCmd)
}
