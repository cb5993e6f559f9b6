// Package backend is the single point of contact with the club's
// hosted backend: identity, REST tables, and object storage. It owns
// request construction, credential attachment, response decoding, and
// failure classification. It performs one attempt per call, provides no
// retries or in-flight deduplication, and leaves authorization policy
// to its callers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/metrics"
	"github.com/fairway-club/clubhouse-api/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Config controls how the client reaches the backend.
type Config struct {
	// BaseURL is the project root, e.g. https://project.example.co.
	BaseURL string
	// AnonKey is the service-level API key sent with every request.
	AnonKey string
	// HTTPClient overrides the default transport; nil gets a client
	// with a 10s timeout.
	HTTPClient *http.Client
	// Sessions holds the caller's session; nil gets an in-memory store.
	Sessions session.Store
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Client issues requests against the backend API. Safe for concurrent
// use; callers racing SignIn against in-flight authenticated calls must
// serialize those transitions themselves.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient httpDoer
	sessions   session.Store
	logger     *slog.Logger
	recorder   *metrics.Recorder
	validate   *validator.Validate
	now        func() time.Time
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = session.NewMemStore()
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		anonKey:    cfg.AnonKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		sessions:   sessions,
		logger:     cfg.Logger,
		recorder:   cfg.Metrics,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		now:        time.Now,
	}
}

// Sessions exposes the session store so callers can inspect or clear
// the current session without going through the client.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// observe records the operation outcome; auth failures get their own
// counter on top of the error count.
func (c *Client) observe(op string, start time.Time, err error) {
	c.recorder.RecordOperation(op, time.Since(start), err)
	if _, ok := AsAuthError(err); ok {
		c.recorder.RecordAuthFailure(op)
	}
}

// requireSession returns the current session or an AuthError when none
// exists or its token is clearly expired. No operation falls back to
// the service key as a bearer token.
func (c *Client) requireSession(op string) (session.Session, error) {
	sess, ok := c.sessions.Current()
	if !ok {
		return session.Session{}, &AuthError{Op: op, Message: "no active session, sign in first"}
	}
	if expiredAt, expired := tokenExpiry(sess.AccessToken, c.now()); expired {
		return session.Session{}, &AuthError{
			Op:      op,
			Message: fmt.Sprintf("session expired at %s, sign in again", expiredAt.Format(time.RFC3339)),
		}
	}
	return sess, nil
}

// tokenExpiry inspects the access token's exp claim without verifying
// the signature. Tokens that do not parse as JWTs are treated as opaque
// and never considered expired locally.
func tokenExpiry(token string, now time.Time) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	if exp.Time.Before(now) {
		return exp.Time, true
	}
	return time.Time{}, false
}

func (c *Client) restURL(table string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newJSONRequest builds a request carrying the service API key and, for
// non-nil payloads, a JSON body.
func (c *Client) newJSONRequest(ctx context.Context, op, method, rawURL string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &RequestError{Op: op, Err: errors.Wrap(err, "encode request body")}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: errors.Wrap(err, "build request")}
	}

	req.Header.Set(headerAPIKey, c.anonKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func withBearer(req *http.Request, sess session.Session) {
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
}

// do issues the request, classifying transport failures as NetworkError.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

// decodeJSON parses the response body, classifying failures as DecodeError.
func decodeJSON(op string, resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// serverMessage extracts the human-readable message from an error body,
// trying the field names the identity and REST endpoints use.
func serverMessage(body []byte) string {
	var parsed authErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, msg := range []string{parsed.ErrorDescription, parsed.Msg, parsed.Message} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// authStatusError classifies a non-2xx identity endpoint response. The
// identity endpoint only ever signals auth failures.
func (c *Client) authStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := serverMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return &AuthError{Op: op, Status: resp.StatusCode, Message: msg}
}

// restStatusError classifies a non-2xx REST or storage response.
func (c *Client) restStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		msg := serverMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("status code %d", resp.StatusCode)
		}
		return &AuthError{Op: op, Status: resp.StatusCode, Message: msg}
	default:
		return &UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}
