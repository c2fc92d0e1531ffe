package model

// AuthClaims are the claims the admin API cares about from a bearer token.
type AuthClaims struct {
	Subject string `json:"sub"`
}
