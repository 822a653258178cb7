package main

import (
	"github.com/spf13/cobra"

	"wrestling-admin/internal/infrastructure/database"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the database schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:         "apply",
	Short:       "Create the entity and junction tables if they do not exist",
	Annotations: map[string]string{"needsDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ApplySchema(cmd.Context(), getDB(cmd).Pool); err != nil {
			return err
		}
		return render(cmd, map[string]bool{"applied": true}, "Schema applied")
	},
}

var schemaPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the reference schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write([]byte(database.Schema))
		return err
	},
}

func init() {
	schemaCmd.AddCommand(schemaApplyCmd, schemaPrintCmd)
}
