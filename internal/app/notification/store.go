package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"meetrix/internal/pkg/randx"
)

// ListLimit caps how many notifications one listing call returns.
const ListLimit = 50

// Store persists notifications in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a new unread notification for the given user and returns the stored row.
func (s *Store) Create(ctx context.Context, userID string, kind Type, content string) (Notification, error) {
	n := Notification{
		ID:        randx.NotificationID(),
		UserID:    userID,
		Type:      kind,
		Content:   content,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, content, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, string(n.Type), n.Content, n.Read, n.CreatedAt,
	)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}

	return n, nil
}

// ListByUser returns the user's most recent notifications, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, type, content, read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, ListLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0, ListLimit)
	for rows.Next() {
		var n Notification
		var kind string

		if err := rows.Scan(&n.ID, &n.UserID, &kind, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}

		n.Type = Type(kind)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
	}

	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flags one of the user's notifications as read. It reports whether
// a matching row existed.
func (s *Store) MarkRead(ctx context.Context, id string, userID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkAllRead flags every unread notification of the user as read.
func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
