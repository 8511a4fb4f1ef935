package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetrix/internal/pkg/logx"
)

func init() {
	logx.InitGlobalLogger(false)
}

// fakeRecorder is an in-memory Recorder standing in for the Postgres store.
type fakeRecorder struct {
	created []Notification
	failing bool
}

func (f *fakeRecorder) Create(ctx context.Context, userID string, kind Type, content string) (Notification, error) {
	if f.failing {
		return Notification{}, errors.New("store unavailable")
	}

	n := Notification{
		ID:        "n1",
		UserID:    userID,
		Type:      kind,
		Content:   content,
		CreatedAt: time.Now(),
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeRecorder) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	var out []Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRecorder) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecorder) MarkRead(ctx context.Context, id string, userID string) (bool, error) {
	for i, n := range f.created {
		if n.ID == id && n.UserID == userID {
			f.created[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecorder) MarkAllRead(ctx context.Context, userID string) error {
	for i, n := range f.created {
		if n.UserID == userID {
			f.created[i].Read = true
		}
	}
	return nil
}

// fakePusher records real-time dispatches.
type fakePusher struct {
	dispatches []struct {
		userID  string
		payload any
	}
}

func (f *fakePusher) Dispatch(userID string, payload any) {
	f.dispatches = append(f.dispatches, struct {
		userID  string
		payload any
	}{userID, payload})
}

func TestPushPersistsThenDispatches(t *testing.T) {
	store := &fakeRecorder{}
	pusher := &fakePusher{}
	svc := NewService(store, pusher)

	n, err := svc.Push(context.Background(), "u7", TypeSubmissionGraded, "Graded: 85/100")
	if err != nil {
		t.Fatalf("Push returned error: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(store.created))
	}
	if len(pusher.dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(pusher.dispatches))
	}

	d := pusher.dispatches[0]
	if d.userID != "u7" {
		t.Fatalf("dispatched to wrong user: %q", d.userID)
	}

	// The pushed payload is the stored record, not a separate shape.
	pushed, ok := d.payload.(Notification)
	if !ok {
		t.Fatalf("dispatched payload is not a Notification: %T", d.payload)
	}
	if pushed.ID != n.ID || pushed.Content != "Graded: 85/100" {
		t.Fatalf("dispatched payload mismatch: %+v", pushed)
	}
}

func TestPushRejectsUnknownType(t *testing.T) {
	store := &fakeRecorder{}
	pusher := &fakePusher{}
	svc := NewService(store, pusher)

	if _, err := svc.Push(context.Background(), "u7", Type("BOGUS"), "x"); err == nil {
		t.Fatal("expected error for unknown notification type")
	}

	if len(store.created) != 0 || len(pusher.dispatches) != 0 {
		t.Fatal("rejected push must not store or dispatch anything")
	}
}

func TestPushRequiresUserAndContent(t *testing.T) {
	svc := NewService(&fakeRecorder{}, &fakePusher{})

	if _, err := svc.Push(context.Background(), "", TypeMessage, "x"); err == nil {
		t.Fatal("expected error for missing user")
	}
	if _, err := svc.Push(context.Background(), "u7", TypeMessage, ""); err == nil {
		t.Fatal("expected error for missing content")
	}
}

func TestPushSkipsDispatchOnStoreFailure(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewService(&fakeRecorder{failing: true}, pusher)

	if _, err := svc.Push(context.Background(), "u7", TypeAnnouncement, "x"); err == nil {
		t.Fatal("expected store error to propagate")
	}

	if len(pusher.dispatches) != 0 {
		t.Fatal("nothing may be pushed when the write fails")
	}
}

func TestListAggregatesUnreadCount(t *testing.T) {
	store := &fakeRecorder{}
	svc := NewService(store, &fakePusher{})
	ctx := context.Background()

	if _, err := svc.Push(ctx, "u7", TypeAssignmentCreated, "New assignment"); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}
	if _, err := svc.Push(ctx, "someone-else", TypeAnnouncement, "not yours"); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}

	notifications, unread, err := svc.List(ctx, "u7")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification for u7, got %d", len(notifications))
	}
	if unread != 1 {
		t.Fatalf("expected unread count 1, got %d", unread)
	}

	if err := svc.MarkAllRead(ctx, "u7"); err != nil {
		t.Fatalf("MarkAllRead returned error: %v", err)
	}

	_, unread, err = svc.List(ctx, "u7")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected unread count 0 after MarkAllRead, got %d", unread)
	}
}

func TestTypeValid(t *testing.T) {
	for _, valid := range []Type{
		TypeAssignmentCreated, TypeSubmissionGraded, TypeAnnouncement,
		TypeSessionLive, TypeMessage, TypeClassJoined,
	} {
		if !valid.Valid() {
			t.Fatalf("%s should be valid", valid)
		}
	}

	for _, invalid := range []Type{"", "assignment_created", "WHATEVER"} {
		if invalid.Valid() {
			t.Fatalf("%q should be invalid", invalid)
		}
	}
}
