package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wrestling-admin/internal/infrastructure/storage"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Manage the image bucket",
}

var storageInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the image bucket and apply the public-read policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getCfg(cmd)

		st, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		created, err := st.EnsureBucket(ctx)
		if err != nil {
			return unavailable(err)
		}

		state := "already exists"
		if created {
			state = "created"
		}
		return render(cmd, map[string]interface{}{
			"bucket":  st.Bucket(),
			"created": created,
			"url":     st.PublicURL(""),
		}, fmt.Sprintf("Bucket %q %s, public read policy applied", st.Bucket(), state))
	},
}

var storageCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the image bucket is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storage.NewMinIOStorage(getCfg(cmd).MinIO)
		if err != nil {
			return err
		}
		if err := st.HealthCheck(cmd.Context()); err != nil {
			return unavailable(err)
		}
		return render(cmd, map[string]interface{}{"bucket": st.Bucket(), "ok": true},
			fmt.Sprintf("Bucket %q is reachable", st.Bucket()))
	},
}

func init() {
	storageCmd.AddCommand(storageInitCmd, storageCheckCmd)
}
