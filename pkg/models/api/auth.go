package api

type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// SessionPayload is the cookie-mode session probe response. A rotated
// session key, when present, is consumed by the gateway before the payload
// reaches the caller.
type SessionPayload struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserProfile `json:"user,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// AuthResponse covers both login and register. Token is only populated in
// token-mode deployments; cookie-mode deployments rely on the transport
// cookie plus the rotated session key instead.
type AuthResponse struct {
	User  *UserProfile `json:"user,omitempty"`
	Token string       `json:"token,omitempty"`
}
