package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound/internal/model"
)

var _ model.NotificationStore = (*NotificationRepository)(nil)

// NotificationRepository stores match notifications through database/sql.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Save inserts notifications in one transaction. Pairs that already exist are
// skipped and not counted.
func (r *NotificationRepository) Save(ctx context.Context, notifications []model.MatchNotification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_notifications (id, user_id, item_id, matched_item_id, item_name, matched_name, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, item_id, matched_item_id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare notification insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, n := range notifications {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		res, err := stmt.ExecContext(ctx,
			n.ID, n.UserID, n.ItemID, n.MatchedItemID, n.ItemName, n.MatchedName, n.Category, n.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert notification: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		saved += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit notifications: %w", err)
	}

	return saved, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.MatchNotification, error) {
	const query = `
		SELECT id, user_id, item_id, matched_item_id, item_name, matched_name, category, created_at
		FROM match_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var out []model.MatchNotification
	for rows.Next() {
		var n model.MatchNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ItemID, &n.MatchedItemID, &n.ItemName, &n.MatchedName, &n.Category, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
