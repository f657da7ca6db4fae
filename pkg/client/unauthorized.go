package client

// SignInPath is the navigable location of the sign-in surface. The redirect
// guard compares against it so concurrent 401s trigger at most one
// navigation.
const SignInPath = "/login"

// Navigator abstracts the navigable environment so the gateway stays
// testable outside of one. Location returns the current path; Navigate
// moves to another.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// handleUnauthorized reacts to a 401: the credential is presumed invalid
// regardless of cause and is always cleared. Navigation is skipped when
// suppressed (login/register surfacing the failure inline) or when already
// on the sign-in surface.
func (c *Client) handleUnauthorized(suppressRedirect bool) {
	_ = c.store.Clear()

	if suppressRedirect || c.navigator == nil {
		return
	}
	if c.navigator.Location() != SignInPath {
		c.navigator.Navigate(SignInPath)
	}
}
