package randx

import (
	"strconv"
	"strings"
	"testing"
)

func TestMessageIDFormat(t *testing.T) {
	id := MessageID()

	if !strings.HasPrefix(id, MessageIDPrefix) {
		t.Fatalf("missing prefix: %q", id)
	}

	parts := strings.Split(strings.TrimPrefix(id, MessageIDPrefix), "_")
	if len(parts) != 2 {
		t.Fatalf("expected msg_<millis>_<suffix>, got %q", id)
	}

	if _, err := strconv.ParseInt(parts[0], 10, 64); err != nil {
		t.Fatalf("timestamp component %q is not an integer: %v", parts[0], err)
	}

	if len(parts[1]) != MessageIDSuffixLength {
		t.Fatalf("expected %d-character suffix, got %q", MessageIDSuffixLength, parts[1])
	}

	for _, ch := range parts[1] {
		if !strings.ContainsRune(Base62Chars, ch) {
			t.Fatalf("suffix contains non-base62 character %q in %q", ch, id)
		}
	}
}

func TestMessageIDUniqueness(t *testing.T) {
	const count = 1000

	seen := make(map[string]struct{}, count)
	for range count {
		id := MessageID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate message ID: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestConnectionIDUniqueness(t *testing.T) {
	if ConnectionID() == ConnectionID() {
		t.Fatal("consecutive connection IDs collided")
	}
}
