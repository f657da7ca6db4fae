package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// sessionKeyField is the response body field carrying a rotated session
// key. A JSON null in it clears the stored credential instead.
const sessionKeyField = "session_key"

// Client is the API gateway: the single chokepoint every domain call goes
// through. It owns base URL resolution, credential injection, response
// classification, session-key rotation and 401 handling.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	mode      CredentialMode
	store     CredentialStore
	navigator Navigator
}

type Config struct {
	// BaseURL is the remote engine address. A base with an empty path is
	// given an /api segment; trailing slashes are stripped.
	BaseURL string
	Mode    CredentialMode
	// Store defaults to an in-memory store when nil.
	Store CredentialStore
	// Navigator may be nil, in which case 401s clear the credential but
	// never navigate.
	Navigator Navigator
	// HTTPClient defaults to a cookie-jar-carrying client so the pure
	// cookie mode works with no explicit header at all.
	HTTPClient *http.Client
}

func New(cfg Config) (*Client, error) {
	base, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeToken
	}

	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar}
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		mode:      mode,
		store:     store,
		navigator: cfg.Navigator,
	}, nil
}

// Mode returns the credential mode the client was configured with.
func (c *Client) Mode() CredentialMode {
	return c.mode
}

// Store returns the credential store the client writes rotations into.
func (c *Client) Store() CredentialStore {
	return c.store
}

// BaseURL returns the resolved base, after /api defaulting and trailing
// slash stripping.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", raw)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = "/api"
	}
	u.RawQuery = ""
	u.Fragment = ""

	return u, nil
}

// normalizePath forces exactly one leading slash and exactly one trailing
// slash before any query string, which is preserved verbatim. The function
// is idempotent.
func normalizePath(p string) string {
	path := p
	query := ""
	if i := strings.IndexByte(p, '?'); i >= 0 {
		path, query = p[:i], p[i:]
	}

	path = "/" + strings.Trim(path, "/")
	if path != "/" {
		path += "/"
	}

	return path + query
}

// do performs one gateway call. out, when non-nil, receives the decoded
// success payload. Non-2xx statuses come back as *APIError; a 401 runs the
// unauthorized handler first.
func (c *Client) do(ctx context.Context, path string, opts requestOptions, out interface{}) error {
	logger := zerolog.Ctx(ctx)

	var body io.Reader
	if opts.jsonBody != nil {
		encoded, err := json.Marshal(opts.jsonBody)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = opts.body
	}

	target := c.baseURL.String() + normalizePath(path)
	req, err := http.NewRequestWithContext(ctx, opts.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = buildHeaders(c.mode, c.store, opts)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("request transport failure")
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent && !opts.skipBody && isJSONResponse(resp) && len(raw) > 0 {
		// Decode errors leave the body absent, which is not a failure by
		// itself.
		_ = json.Unmarshal(raw, &decoded)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.applyRotation(decoded)
		if out != nil && decoded != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("failed to decode response from %s: %w", path, err)
			}
		}
		if out != nil && decoded == nil && isJSONResponse(resp) && len(raw) > 0 && !opts.skipBody {
			// Non-object JSON payloads (arrays) skip the rotation sniff
			// but still decode.
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("failed to decode response from %s: %w", path, err)
			}
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(opts.suppressRedirect)
	}

	failure := &APIError{
		Message:    failureMessage(decoded, resp.StatusCode),
		StatusCode: resp.StatusCode,
		Body:       decoded,
	}
	logger.Debug().
		Int("status", failure.StatusCode).
		Str("path", path).
		Msg("request failed")
	return failure
}

// applyRotation consumes a server-driven session key replacement. Rotation
// only applies in session-key mode; last write wins because the server is
// the single source of truth for the current key.
func (c *Client) applyRotation(body map[string]interface{}) {
	if c.mode != ModeSessionKey || body == nil {
		return
	}

	value, present := body[sessionKeyField]
	if !present {
		return
	}
	if value == nil {
		_ = c.store.Clear()
		return
	}
	if key, ok := value.(string); ok {
		_ = c.store.Write(key)
	}
}
