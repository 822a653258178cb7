package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entitymodel "wrestling-admin/internal/domains/entity/model"
	entityrepo "wrestling-admin/internal/domains/entity/repository"
	infraCache "wrestling-admin/internal/infrastructure/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the entity cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:       "flush [kind]",
	Short:     "Drop cached entities, for one kind or all of them",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"wrestlers", "promotions", "factions", "championships"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := entitymodel.AllKinds
		if len(args) == 1 {
			kind, err := entitymodel.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []entitymodel.Kind{kind}
		}

		client := infraCache.NewRedisClient(getCfg(cmd).Redis)
		defer client.Close()
		if err := client.Connect(cmd.Context()); err != nil {
			return unavailable(err)
		}

		c := infraCache.NewRedisCache(client.Client, infraCache.DefaultPrefix)
		flushed := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			if err := c.DeletePattern(cmd.Context(), entityrepo.KindPattern(kind)); err != nil {
				return fmt.Errorf("failed to flush %s: %w", kind, err)
			}
			flushed = append(flushed, string(kind))
		}

		return render(cmd, map[string]interface{}{"flushed": flushed},
			fmt.Sprintf("Flushed cache for %v", flushed))
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
}
