package auth

import "errors"

// ErrInvalidCredentials covers both unknown username and wrong password so
// a caller cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrOAuthFailure is returned when an identity provider denies or fails the
// authorization flow.
var ErrOAuthFailure = errors.New("oauth failure")

// CredentialsRequest is the body for registration and login. Accepts both
// form posts and JSON.
type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Cookie names used by the session manager and the OAuth bridge.
const (
	SessionCookieName = "session_token"
	StateCookieName   = "oauth_state"
)
