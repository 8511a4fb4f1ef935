/*
Package notification contains the durable notification model and the service
that persists a notification record and then pushes it to the target user's
private real-time channel.

The stored row is the system of record: the push half is best-effort and is
skipped silently when the user has no live connection. Clients catch up via
the pull-based listing API on next load.
*/
package notification

import "time"

// Type is the discriminated notification kind. The set is closed; anything
// else is rejected before it reaches the store.
type Type string

const (
	TypeAssignmentCreated Type = "ASSIGNMENT_CREATED"
	TypeSubmissionGraded  Type = "SUBMISSION_GRADED"
	TypeAnnouncement      Type = "ANNOUNCEMENT"
	TypeSessionLive       Type = "SESSION_LIVE"
	TypeMessage           Type = "MESSAGE"
	TypeClassJoined       Type = "CLASS_JOINED"
)

// Valid reports whether t is one of the known notification types.
func (t Type) Valid() bool {
	switch t {
	case TypeAssignmentCreated, TypeSubmissionGraded, TypeAnnouncement,
		TypeSessionLive, TypeMessage, TypeClassJoined:
		return true
	}
	return false
}

// Notification is one durable alert addressed to a single user.
// Field JSON tags match the wire shape of the real-time `notification` event
// and of the listing API, so the pushed copy and the pulled copy are identical.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
