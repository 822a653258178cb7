package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"wrestling-admin/internal/shared/capability"
)

const imageColumnQuery = `
	SELECT table_name
	FROM information_schema.columns
	WHERE table_schema = current_schema()
	  AND column_name = 'image_url'
	  AND table_name = ANY($1)
`

// ProbeCapabilities queries information_schema once and records, for every table
// the set knows about, whether it has an image_url column.
func ProbeCapabilities(ctx context.Context, pool *pgxpool.Pool, caps *capability.Set) error {
	tables := caps.Tables()
	if len(tables) == 0 {
		return nil
	}

	rows, err := pool.Query(ctx, imageColumnQuery, tables)
	if err != nil {
		return fmt.Errorf("failed to probe image columns: %w", err)
	}
	defer rows.Close()

	found := make(map[string]bool, len(tables))
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return fmt.Errorf("failed to scan probed column: %w", err)
		}
		found[table] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating probed columns: %w", err)
	}

	for _, t := range tables {
		caps.SetImageColumn(t, found[t])
		if !found[t] {
			log.Warn().Str("table", t).Msg("[DATABASE] image_url column missing, image support disabled")
		}
	}
	return nil
}
