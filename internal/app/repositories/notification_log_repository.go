package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// NotificationLogRepository handles the audit trail of notification attempts
type NotificationLogRepository struct {
	db *pgxpool.Pool
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{
		db: db,
	}
}

// Create inserts one audit row for a dispatch attempt
func (r *NotificationLogRepository) Create(ctx context.Context, log *models.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (id, match_id, channel, recipient, status, error)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		log.ID, log.MatchID, log.Channel, log.Recipient, log.Status, log.Error,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification log: %w", err)
	}

	return nil
}

// ListByMatch retrieves the dispatch history for one match
func (r *NotificationLogRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.NotificationLog, error) {
	query := `
		SELECT id, match_id, channel, recipient, status, error, created_at
		FROM notification_logs
		WHERE match_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("error listing notification logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.NotificationLog
	for rows.Next() {
		var log models.NotificationLog
		if err := rows.Scan(
			&log.ID,
			&log.MatchID,
			&log.Channel,
			&log.Recipient,
			&log.Status,
			&log.Error,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
