/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Notification Business Logic Errors
const (
	// ErrNotificationNotFound indicates that the referenced notification does not exist
	// or does not belong to the requesting user.
	ErrNotificationNotFound = 2101
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates that the request requires an authenticated identity.
	ErrUnauthorized = 3001
)

// 4xxx: File and Storage Errors
const (
	// ErrFileSizeTooLarge indicates that the declared file size exceeds the upload limit.
	ErrFileSizeTooLarge = 4001

	// ErrFileTypeInvalid indicates that the file name or MIME type is not allowed.
	ErrFileTypeInvalid = 4002

	// ErrFileStorageFailed indicates that the storage backend could not service the request.
	ErrFileStorageFailed = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
