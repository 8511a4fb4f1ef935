package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"meetrix/internal/pkg/logx"
)

// Recorder is the persistence surface the service needs. *Store satisfies it.
type Recorder interface {
	Create(ctx context.Context, userID string, kind Type, content string) (Notification, error)
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// Pusher delivers a payload to a user's private real-time channel.
// realtime.Hub satisfies it; delivery to an offline user is a silent no-op.
type Pusher interface {
	Dispatch(userID string, payload any)
}

// Service combines the durable store with the real-time push. It is the
// in-process API the CRUD handlers (assignment creation, grading,
// announcements, session start) call to alert a user.
type Service struct {
	store  Recorder
	pusher Pusher
	logger zerolog.Logger
}

// NewService constructs a notification Service.
func NewService(store Recorder, pusher Pusher) *Service {
	serviceLogger := logx.Logger().With().Str("component", "NotificationService").Logger()

	return &Service{
		store:  store,
		pusher: pusher,
		logger: serviceLogger,
	}
}

// Push persists a notification record and then delivers it to the user's
// private channel. The write is the system of record: if it fails nothing is
// pushed, while a push to an offline user is simply skipped.
func (s *Service) Push(ctx context.Context, userID string, kind Type, content string) (Notification, error) {
	if userID == "" || content == "" {
		return Notification{}, fmt.Errorf("notification requires a target user and content")
	}

	if !kind.Valid() {
		return Notification{}, fmt.Errorf("unknown notification type %q", kind)
	}

	n, err := s.store.Create(ctx, userID, kind, content)
	if err != nil {
		return Notification{}, err
	}

	s.pusher.Dispatch(userID, n)

	s.logger.Debug().
		Str("user_id", userID).
		Str("notification_id", n.ID).
		Str("type", string(kind)).
		Msg("Notification stored and dispatched.")

	return n, nil
}

// List returns the user's most recent notifications together with the unread count.
func (s *Service) List(ctx context.Context, userID string) ([]Notification, int64, error) {
	notifications, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

// MarkRead flags a single notification as read, scoped to the owning user.
func (s *Service) MarkRead(ctx context.Context, id string, userID string) (bool, error) {
	return s.store.MarkRead(ctx, id, userID)
}

// MarkAllRead flags all of the user's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllRead(ctx, userID)
}
