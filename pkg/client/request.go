package client

import (
	"io"
	"net/http"
)

type requestOptions struct {
	method      string
	jsonBody    interface{}
	body        io.Reader
	contentType string
	headers     http.Header
	multipart   bool
	skipAuth    bool
	// suppressRedirect keeps a 401 from navigating to sign-in. Set on
	// login/register, where the failure belongs on the form instead.
	suppressRedirect bool
	// skipBody short-circuits response decoding, same as a 204 would.
	skipBody bool
}

// buildHeaders composes the outgoing header set: a structured-data content
// type by default, the mode-appropriate credential header unless skipAuth,
// and caller-supplied headers last so they win over the computed defaults.
// http.Header canonicalizes names, which gives case-insensitive dedupe.
func buildHeaders(mode CredentialMode, store CredentialStore, opts requestOptions) http.Header {
	h := http.Header{}

	switch {
	case opts.contentType != "":
		h.Set("Content-Type", opts.contentType)
	case opts.multipart:
		// Leave the content type to the multipart writer, which carries
		// the boundary.
	default:
		h.Set("Content-Type", "application/json")
	}

	if !opts.skipAuth {
		if value, ok := store.Read(); ok && value != "" {
			switch mode {
			case ModeToken:
				h.Set(authorizationHeader, "Token "+value)
			case ModeSessionKey:
				h.Set(sessionKeyHeader, value)
			}
		}
	}

	for name, values := range opts.headers {
		h.Del(name)
		for _, v := range values {
			h.Add(name, v)
		}
	}

	return h
}
