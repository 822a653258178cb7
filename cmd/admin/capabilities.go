package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	entitymodel "wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/infrastructure/database"
	"wrestling-admin/internal/shared/capability"
)

var capabilitiesCmd = &cobra.Command{
	Use:         "capabilities",
	Short:       "Probe the schema and report optional features",
	Annotations: map[string]string{"needsDB": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		caps := capability.New(entitymodel.ImageTables(), getCfg(cmd).Schema.ImageUploads)
		if err := database.ProbeCapabilities(cmd.Context(), getDB(cmd).Pool, caps); err != nil {
			return unavailable(err)
		}

		snap := caps.Snapshot()
		return render(cmd, snap, formatSnapshot(caps.Tables(), snap))
	},
}

func formatSnapshot(tables []string, snap capability.Snapshot) string {
	var b strings.Builder
	for _, t := range tables {
		state := "missing"
		if snap.ImageColumns[t] {
			state = "present"
		}
		fmt.Fprintf(&b, "%-14s image_url %s\n", t, state)
	}
	uploads := "disabled"
	if snap.ImageUploads {
		uploads = "enabled"
	}
	fmt.Fprintf(&b, "image uploads  %s", uploads)
	return b.String()
}
