package domain

// User is the profile of the currently authenticated account. It is replaced
// wholesale whenever the session is re-derived from the server.
type User struct {
	ID       int
	Username string
	Email    string
}

// SessionStatus pairs the authenticated flag with the profile. User is
// non-nil exactly when Authenticated is true.
type SessionStatus struct {
	Authenticated bool
	User          *User
}
