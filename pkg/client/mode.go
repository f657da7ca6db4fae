package client

// CredentialMode selects which of the historically parallel credential
// strategies is active for a deployment. Exactly one mode is chosen at
// configuration time; call sites never branch on it directly.
type CredentialMode string

const (
	// ModeToken presents an opaque token as `Authorization: Token <t>`.
	ModeToken CredentialMode = "token"
	// ModeSessionKey presents a rotating key in a custom header; the server
	// may replace it in any successful response body.
	ModeSessionKey CredentialMode = "session_key"
	// ModeNone relies purely on the ambient transport cookie.
	ModeNone CredentialMode = "none"
)

const (
	authorizationHeader = "Authorization"
	sessionKeyHeader    = "X-Session-Key"
)

func ParseCredentialMode(s string) (CredentialMode, bool) {
	switch CredentialMode(s) {
	case ModeToken, ModeSessionKey, ModeNone:
		return CredentialMode(s), true
	case "":
		return ModeToken, true
	}
	return "", false
}
