package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wrestling-admin/internal/domains/association/model"
	entitymodel "wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) RelatedIDs(ctx context.Context, kind entitymodel.Kind, wrestlerID int64) ([]int64, error) {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE wrestler_id = $1`, j.Column, j.Table)

	rows, err := r.pool.Query(ctx, query, wrestlerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", j.Table, err)
	}
	return collectIDs(rows)
}

func (r *postgresRepository) RelatedIDsByWrestlers(ctx context.Context, kind entitymodel.Kind, wrestlerIDs []int64) (map[int64][]int64, error) {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]int64, len(wrestlerIDs))
	if len(wrestlerIDs) == 0 {
		return out, nil
	}

	query := fmt.Sprintf(`SELECT wrestler_id, %s FROM %s WHERE wrestler_id = ANY($1)`, j.Column, j.Table)

	rows, err := r.pool.Query(ctx, query, wrestlerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", j.Table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var wrestlerID, otherID int64
		if err := rows.Scan(&wrestlerID, &otherID); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", j.Table, err)
		}
		out[wrestlerID] = append(out[wrestlerID], otherID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", j.Table, err)
	}
	return out, nil
}

func (r *postgresRepository) WrestlerIDs(ctx context.Context, kind entitymodel.Kind, entityID int64) ([]int64, error) {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT wrestler_id FROM %s WHERE %s = $1`, j.Table, j.Column)

	rows, err := r.pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", j.Table, err)
	}
	return collectIDs(rows)
}

// Replace: delete + một câu insert nhiều row (unnest) trong cùng transaction,
// crash giữa chừng không để wrestler mất hết liên kết.
func (r *postgresRepository) Replace(ctx context.Context, kind entitymodel.Kind, wrestlerID int64, ids []int64) error {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return err
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE wrestler_id = $1`, j.Table)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (wrestler_id, %s)
		SELECT $1, other_id FROM unnest($2::bigint[]) AS t(other_id)
		ON CONFLICT DO NOTHING`,
		j.Table, j.Column)

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, wrestlerID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", j.Table, err)
		}
		if len(ids) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, insertQuery, wrestlerID, ids); err != nil {
			return fmt.Errorf("failed to insert %s: %w", j.Table, err)
		}
		return nil
	})
}

func (r *postgresRepository) Count(ctx context.Context, kind entitymodel.Kind, entityID int64) (int, error) {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, j.Table, j.Column)

	var count int
	if err := r.pool.QueryRow(ctx, query, entityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", j.Table, err)
	}
	return count, nil
}

func (r *postgresRepository) CountAll(ctx context.Context, kind entitymodel.Kind) (map[int64]int, error) {
	j, err := model.JunctionFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s`, j.Column, j.Table, j.Column)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", j.Table, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", j.Table, err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s counts: %w", j.Table, err)
	}
	return counts, nil
}
