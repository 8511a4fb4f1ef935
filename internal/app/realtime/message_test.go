package realtime

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestStampMessagePreservesPayload(t *testing.T) {
	payload := sendMessagePayload{
		RoomID:     "class-42",
		SenderID:   "u1",
		SenderName: "Ann",
		Content:    "hi",
		FileURL:    "https://files.example.com/class-42/abc.png",
	}

	msg := stampMessage(payload)

	if msg.RoomID != payload.RoomID || msg.SenderID != payload.SenderID ||
		msg.SenderName != payload.SenderName || msg.Content != payload.Content ||
		msg.FileURL != payload.FileURL {
		t.Fatalf("stamped message lost payload fields: %+v", msg)
	}

	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Fatalf("message ID missing prefix: %q", msg.ID)
	}

	if _, err := time.Parse(isoTimestamp, msg.CreatedAt); err != nil {
		t.Fatalf("createdAt %q does not parse as ISO-8601: %v", msg.CreatedAt, err)
	}
}

func TestStampMessageUniqueIDsUnderConcurrency(t *testing.T) {
	const (
		workers       = 100
		perWorker     = 100
		totalMessages = workers * perWorker
	)

	payload := sendMessagePayload{RoomID: "class-42", SenderID: "u1", Content: "x"}

	ids := make(chan string, totalMessages)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- stampMessage(payload).ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, totalMessages)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate message ID generated: %q", id)
		}
		seen[id] = struct{}{}
	}

	if len(seen) != totalMessages {
		t.Fatalf("expected %d distinct IDs, got %d", totalMessages, len(seen))
	}
}

func TestSendMessagePayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload sendMessagePayload
		want    bool
	}{
		{"complete", sendMessagePayload{RoomID: "r", SenderID: "u", SenderName: "Ann", Content: "hi"}, true},
		{"no file url required", sendMessagePayload{RoomID: "r", SenderID: "u", Content: "hi"}, true},
		{"missing room", sendMessagePayload{SenderID: "u", Content: "hi"}, false},
		{"missing sender", sendMessagePayload{RoomID: "r", Content: "hi"}, false},
		{"missing content", sendMessagePayload{RoomID: "r", SenderID: "u"}, false},
		{"empty", sendMessagePayload{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payload.valid(); got != tt.want {
				t.Fatalf("valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
