package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/shared/capability"
)

// postgresRepository implements RepositoryInterface over pgxpool.
// Tên bảng lấy từ model.Kind (whitelist), không bao giờ từ input của client.
type postgresRepository struct {
	pool *pgxpool.Pool
	caps *capability.Set
}

func NewPostgresRepository(pool *pgxpool.Pool, caps *capability.Set) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
		caps: caps,
	}
}

// columns chỉ select image_url khi bảng có cột đó
func (r *postgresRepository) columns(kind model.Kind) string {
	if kind.SupportsImage() && r.caps.ImageColumn(kind.Table()) {
		return "id, name, image_url, created_at, updated_at"
	}
	return "id, name, NULL::text AS image_url, created_at, updated_at"
}

func scanEntity(row pgx.Row) (*model.Entity, error) {
	var e model.Entity
	if err := row.Scan(&e.ID, &e.Name, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEntities(rows pgx.Rows) ([]model.Entity, error) {
	defer rows.Close()

	out := make([]model.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) List(ctx context.Context, kind model.Kind) ([]model.Entity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name ASC, id ASC`, r.columns(kind), kind.Table())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return collectEntities(rows)
}

func (r *postgresRepository) GetByID(ctx context.Context, kind model.Kind, id int64) (*model.Entity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.columns(kind), kind.Table())

	e, err := scanEntity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s by id: %w", kind.Label(), err)
	}
	return e, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, kind model.Kind, ids []int64) ([]model.Entity, error) {
	if len(ids) == 0 {
		return []model.Entity{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1) ORDER BY name ASC, id ASC`, r.columns(kind), kind.Table())

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by ids: %w", kind, err)
	}
	return collectEntities(rows)
}

func (r *postgresRepository) Create(ctx context.Context, kind model.Kind, fields model.Fields) (*model.Entity, error) {
	cols := []string{"name"}
	args := []interface{}{fields.Name}
	if fields.WithImage {
		cols = append(cols, "image_url")
		args = append(args, fields.ImageURL)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s`,
		kind.Table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "), r.columns(kind))

	e, err := scanEntity(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", kind.Label(), err)
	}
	return e, nil
}

func (r *postgresRepository) Update(ctx context.Context, kind model.Kind, id int64, fields model.Fields, updatedAt time.Time) (*model.Entity, error) {
	set := "name = $2, updated_at = $3"
	args := []interface{}{id, fields.Name, updatedAt}
	if fields.WithImage {
		set += ", image_url = $4"
		args = append(args, fields.ImageURL)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $1
		RETURNING %s`,
		kind.Table(), set, r.columns(kind))

	e, err := scanEntity(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s: %w", kind.Label(), err)
	}
	return e, nil
}

func (r *postgresRepository) Delete(ctx context.Context, kind model.Kind, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind.Table())

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", kind.Label(), err)
	}
	return tag.RowsAffected() > 0, nil
}
