/*
Package realtime contains the room-based messaging core.

This file implements the message relay: inbound send_message payloads are
validated, stamped with a server-assigned identifier and timestamp, and handed
to the Hub for fan-out. Messages are never persisted; a stamped message exists
only for the duration of the broadcast.
*/
package realtime

import (
	"time"

	"meetrix/internal/pkg/randx"
)

// isoTimestamp formats createdAt the way the web client expects: UTC
// ISO-8601 with millisecond precision.
const isoTimestamp = "2006-01-02T15:04:05.000Z"

// sendMessagePayload is the inbound send_message schema.
type sendMessagePayload struct {
	RoomID     string `json:"roomId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	FileURL    string `json:"fileUrl,omitempty"`
}

func (p sendMessagePayload) valid() bool {
	return p.RoomID != "" && p.SenderID != "" && p.Content != ""
}

// ChatMessage is the canonical broadcast form of a chat message: the client's
// payload plus the server-assigned id and createdAt. The timestamp reflects
// server receipt order, not client send order.
type ChatMessage struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	FileURL    string `json:"fileUrl,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// stampMessage builds the canonical ChatMessage from a validated inbound
// payload. The id combines wallclock millis with a random suffix so bursts of
// concurrent sends within the same millisecond still get distinct ids.
func stampMessage(p sendMessagePayload) ChatMessage {
	return ChatMessage{
		ID:         randx.MessageID(),
		RoomID:     p.RoomID,
		SenderID:   p.SenderID,
		SenderName: p.SenderName,
		Content:    p.Content,
		FileURL:    p.FileURL,
		CreatedAt:  time.Now().UTC().Format(isoTimestamp),
	}
}
