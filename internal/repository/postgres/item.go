package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lostfound/internal/model"
)

const itemColumns = `i.id, i.owner_id, i.legacy_user_id, i.type, i.name, i.description, i.category,
		       i.location_text, i.location_lat, i.location_lng, i.lost_at, i.image_url,
		       i.created_at, i.updated_at, i.deleted_at`

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	query := `
		INSERT INTO items AS i (id, owner_id, legacy_user_id, type, name, description, category,
		                   location_text, location_lat, location_lng, lost_at, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRow(ctx, query,
		item.ID, item.OwnerID, item.LegacyUserID, string(item.Type), item.Name, item.Description, item.Category,
		item.Location.Text, item.Location.Lat, item.Location.Lng, item.LostAt, item.ImageURL,
		item.CreatedAt, item.UpdatedAt,
	))
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	return saved, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items i
		WHERE i.id = $1 AND i.deleted_at IS NULL`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// GetByOwner returns items posted by ownerID, including rows imported with
// only a legacy user id.
func (r *ItemRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items i
		WHERE (i.owner_id = $1 OR i.legacy_user_id = $2) AND i.deleted_at IS NULL
		ORDER BY i.created_at DESC`

	return r.queryItems(ctx, query, ownerID, ownerID.String())
}

func (r *ItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + itemColumns + `
		FROM items i
		WHERE i.id = ANY($1::uuid[]) AND i.deleted_at IS NULL
		ORDER BY i.created_at DESC`

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	return r.queryItems(ctx, query, raw)
}

// FindCandidates returns live items of itemType in category that belong to
// somebody other than excludeOwner. Items of deleted accounts never match.
func (r *ItemRepository) FindCandidates(ctx context.Context, itemType model.ItemType, category string, excludeOwner uuid.UUID) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items i
		JOIN users u ON u.id = i.owner_id AND u.deleted_at IS NULL
		WHERE i.type = $1 AND lower(i.category) = lower($2) AND i.owner_id <> $3 AND i.deleted_at IS NULL
		ORDER BY i.created_at DESC`

	return r.queryItems(ctx, query, string(itemType), category, excludeOwner)
}

func (r *ItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE items SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SoftDeleteByOwner retires every live item of ownerID and reports how many
// rows were touched.
func (r *ItemRepository) SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	const query = `UPDATE items SET deleted_at = NOW(), updated_at = NOW() WHERE (owner_id = $1 OR legacy_user_id = $2) AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, ownerID, ownerID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete owner items: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]model.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanItem(row pgx.Row) (model.Item, error) {
	var (
		item     model.Item
		itemType string
	)
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.LegacyUserID, &itemType, &item.Name, &item.Description, &item.Category,
		&item.Location.Text, &item.Location.Lat, &item.Location.Lng, &item.LostAt, &item.ImageURL,
		&item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
	)
	item.Type = model.ItemType(itemType)
	return item, err
}
