package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims identifying a Meetrix user.
// It embeds the standard claims required for validity checks plus the custom
// claims the server needs to address the user's private notification channel
// and to authorize the notification and file APIs.
type Payload struct {
	// StandardClaims embeds the standard JWT fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer).
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the unique identifier of the user.
	ID string `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`

	// Role defines the participant's role within the product ("teacher" or "student").
	Role string `json:"role"`
}
