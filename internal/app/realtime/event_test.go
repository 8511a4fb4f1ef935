package realtime

import (
	"encoding/json"
	"testing"
)

func TestDecodeInboundKinds(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  inboundKind
	}{
		{"join", `{"event":"join_room","data":"class-42"}`, kindJoinRoom},
		{"leave", `{"event":"leave_room","data":"class-42"}`, kindLeaveRoom},
		{"send", `{"event":"send_message","data":{"roomId":"class-42","senderId":"u1","content":"hi"}}`, kindSendMessage},
		{"typing start", `{"event":"typing_start","data":{"roomId":"class-42","user":{"userId":"u1","name":"Ann"}}}`, kindTypingStart},
		{"typing stop", `{"event":"typing_stop","data":{"roomId":"class-42","userId":"u1"}}`, kindTypingStop},
		{"unknown event", `{"event":"no_such_event","data":{}}`, kindUnknown},
		{"missing event name", `{"data":{}}`, kindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeInbound([]byte(tt.frame))
			if err != nil {
				t.Fatalf("decodeInbound returned error: %v", err)
			}
			if event.kind != tt.want {
				t.Fatalf("decodeInbound kind = %d, want %d", event.kind, tt.want)
			}
		})
	}
}

func TestDecodeInboundRejectsInvalidJSON(t *testing.T) {
	if _, err := decodeInbound([]byte("not json at all")); err == nil {
		t.Fatal("expected error for invalid JSON frame")
	}

	if _, err := decodeInbound([]byte(`{"event":`)); err == nil {
		t.Fatal("expected error for truncated frame")
	}
}

func TestEncodeEventRoundTrip(t *testing.T) {
	frame, err := encodeEvent(EventReceiveMessage, ChatMessage{
		ID:       "msg_1_abc",
		RoomID:   "class-42",
		SenderID: "u1",
		Content:  "hi",
	})
	if err != nil {
		t.Fatalf("encodeEvent returned error: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("encoded frame is not a valid envelope: %v", err)
	}
	if env.Event != EventReceiveMessage {
		t.Fatalf("envelope event = %q, want %q", env.Event, EventReceiveMessage)
	}

	var msg ChatMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("envelope data does not decode back to ChatMessage: %v", err)
	}
	if msg.ID != "msg_1_abc" || msg.Content != "hi" {
		t.Fatalf("round-tripped message mismatch: %+v", msg)
	}
}

func TestTypingPayloadValidation(t *testing.T) {
	start := typingStartPayload{RoomID: "class-42", User: TypingUser{UserID: "u1", Name: "Ann"}}
	if !start.valid() {
		t.Fatal("complete typing_start payload should be valid")
	}
	if (typingStartPayload{User: TypingUser{UserID: "u1"}}).valid() {
		t.Fatal("typing_start without room should be invalid")
	}
	if (typingStartPayload{RoomID: "class-42"}).valid() {
		t.Fatal("typing_start without user should be invalid")
	}

	stop := typingStopPayload{RoomID: "class-42", UserID: "u1"}
	if !stop.valid() {
		t.Fatal("complete typing_stop payload should be valid")
	}
	if (typingStopPayload{RoomID: "class-42"}).valid() {
		t.Fatal("typing_stop without user should be invalid")
	}
}
