/*
Package realtime contains the room-based messaging core: the connection and
room registry (Hub), the per-connection pumps (Client), and the wire protocol
spoken over one multiplexed WebSocket per client.

Every frame in either direction is one JSON envelope: {"event": <name>,
"data": <payload>}. Inbound frames are decoded exactly once at this boundary
into a closed event kind; malformed or unknown frames are dropped without
ever terminating the connection.
*/
package realtime

import (
	"encoding/json"
	"fmt"
)

// Client-to-server event names.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
	EventTypingStart = "typing_start"
	EventTypingStop  = "typing_stop"
)

// Server-to-client event names.
const (
	EventReceiveMessage    = "receive_message"
	EventUserTyping        = "user_typing"
	EventUserStoppedTyping = "user_stopped_typing"
	EventNotification      = "notification"
)

// inboundKind is the closed set of client-to-server event kinds. Routing past
// the decode boundary happens on this enum, never on raw event-name strings.
type inboundKind int

const (
	kindUnknown inboundKind = iota
	kindJoinRoom
	kindLeaveRoom
	kindSendMessage
	kindTypingStart
	kindTypingStop
)

// envelope is the wire frame carried in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// inboundEvent is one decoded client frame: the event kind plus its still-raw
// payload, which the handler for that kind unmarshals into its own schema.
type inboundEvent struct {
	kind inboundKind
	data json.RawMessage
}

// decodeInbound parses a raw client frame into an inboundEvent.
// Unknown event names decode to kindUnknown with a nil error so the caller
// can log and drop them distinctly from JSON syntax failures.
func decodeInbound(raw []byte) (inboundEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return inboundEvent{}, fmt.Errorf("invalid event frame: %w", err)
	}

	kind := kindUnknown
	switch env.Event {
	case EventJoinRoom:
		kind = kindJoinRoom
	case EventLeaveRoom:
		kind = kindLeaveRoom
	case EventSendMessage:
		kind = kindSendMessage
	case EventTypingStart:
		kind = kindTypingStart
	case EventTypingStop:
		kind = kindTypingStop
	}

	return inboundEvent{kind: kind, data: env.Data}, nil
}

// encodeEvent marshals an outbound frame. The payload is marshaled once per
// broadcast, so every recipient receives byte-identical data.
func encodeEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	return json.Marshal(envelope{Event: event, Data: data})
}

// TypingUser identifies who is typing in a typing_start signal.
type TypingUser struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// typingStartPayload is the inbound typing_start schema.
type typingStartPayload struct {
	RoomID string     `json:"roomId"`
	User   TypingUser `json:"user"`
}

func (p typingStartPayload) valid() bool {
	return p.RoomID != "" && p.User.UserID != ""
}

// typingStopPayload is the inbound typing_stop schema.
type typingStopPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func (p typingStopPayload) valid() bool {
	return p.RoomID != "" && p.UserID != ""
}
