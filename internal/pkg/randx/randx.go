/*
Package randx provides functions for generating cryptographically secure random
identifiers.

It generates chat message IDs (wallclock millis plus a random Base62 suffix, so
IDs stay unique under bursts of concurrent sends within the same millisecond),
and standard UUID identifiers for connections and notifications.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// MessageIDPrefix is the prefix carried by every server-assigned chat message ID.
	MessageIDPrefix = "msg_"

	// MessageIDSuffixLength is the number of random Base62 characters appended
	// after the timestamp component of a message ID.
	MessageIDSuffixLength = 9
)

// base62String generates a random Base62 string of the given length using crypto/rand.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := range length {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random base62 character: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// MessageID generates a unique chat message identifier of the form
// msg_<unix-millis>_<random-suffix>. The timestamp keeps IDs roughly sortable
// by receipt time; the suffix keeps them unique within a single millisecond.
func MessageID() string {
	suffix, err := base62String(MessageIDSuffixLength)
	if err != nil {
		// crypto/rand failing is unrecoverable; fall back to a UUID rather than
		// handing out a colliding ID.
		return MessageIDPrefix + uuid.New().String()
	}

	return fmt.Sprintf("%s%d_%s", MessageIDPrefix, time.Now().UnixMilli(), suffix)
}

// ConnectionID generates a UUID v4 string identifying one live transport connection.
func ConnectionID() string {
	return uuid.New().String()
}

// NotificationID generates a UUID v4 string identifying a stored notification.
func NotificationID() string {
	return uuid.New().String()
}
