package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"wrestling-admin/internal/config"
	"wrestling-admin/internal/infrastructure/database"
)

var version = "dev"

type contextKey string

const (
	cfgKey contextKey = "cfg"
	dbKey  contextKey = "db"
)

// Exit codes
const (
	exitSuccess     = 0
	exitGeneral     = 1
	exitUnavailable = 2
)

// CmdError gắn exit code cho lỗi của một command
type CmdError struct {
	Err  error
	Code int
}

func (e *CmdError) Error() string { return e.Err.Error() }

func (e *CmdError) Unwrap() error { return e.Err }

func unavailable(err error) *CmdError {
	return &CmdError{Err: err, Code: exitUnavailable}
}

var rootCmd = &cobra.Command{
	Use:     "wrestling-admin",
	Short:   "Operator tooling for the wrestling admin backend",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), cfgKey, cfg)

		if _, ok := cmd.Annotations["needsDB"]; !ok {
			cmd.SetContext(ctx)
			return nil
		}

		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return err
		}
		dbConfig.MaxRetries = 1

		db := database.NewPostgresDB(dbConfig)
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := db.Connect(connectCtx); err != nil {
			return unavailable(fmt.Errorf("failed to connect to database: %w", err))
		}

		cmd.SetContext(context.WithValue(ctx, dbKey, db))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db := getDB(cmd); db != nil {
			db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(storageCmd, capabilitiesCmd, schemaCmd, cacheCmd)
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	return cfg
}

func getDB(cmd *cobra.Command) *database.PostgresDB {
	db, _ := cmd.Context().Value(dbKey).(*database.PostgresDB)
	return db
}

// render in JSON khi có --json, không thì in text
func render(cmd *cobra.Command, v interface{}, text string) error {
	jsonMode, _ := cmd.Flags().GetBool("json")
	return write(cmd.OutOrStdout(), jsonMode, v, text)
}

func write(w io.Writer, jsonMode bool, v interface{}, text string) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err)

		var ce *CmdError
		if errors.As(err, &ce) {
			return ce.Code
		}
		return exitGeneral
	}
	return exitSuccess
}
