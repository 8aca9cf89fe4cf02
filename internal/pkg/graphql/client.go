// Package graphql is the single gateway to the remote GraphQL API. Every
// request goes through Client, which is also where authentication failures are
// detected on both the transport and payload channels.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

const (
	maxResponseBytes = 10 << 20
	bodySnippetLen   = 512

	// TokenCookieName is the cookie the backend sets on a successful login.
	TokenCookieName = "token"
)

// Messages and codes the backend uses to report a missing or invalid session.
var (
	unauthenticatedMessages = map[string]bool{
		"Not authenticated": true,
		"Unauthorized":      true,
	}
	unauthenticatedCode = "UNAUTHENTICATED"
)

var operationPattern = regexp.MustCompile(`^\s*(query|mutation)\s*([A-Za-z_][A-Za-z0-9_]*)?`)

// Request is the body of a GraphQL POST.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Response is the decoded GraphQL envelope plus what the transport told us.
type Response struct {
	Data   json.RawMessage            `json:"data,omitempty"`
	Errors []apperrors.GraphQLMessage `json:"errors,omitempty"`

	StatusCode int            `json:"-"`
	Cookies    []*http.Cookie `json:"-"`
}

// Cookie returns the named cookie set by the backend, if any.
func (r *Response) Cookie(name string) (*http.Cookie, bool) {
	if r == nil {
		return nil, false
	}
	for _, c := range r.Cookies {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// SessionProvider supplies credentials for outgoing requests and is told when
// the backend rejects them.
type SessionProvider interface {
	// Token returns the bearer token bound to ctx, or "".
	Token(ctx context.Context) string
	// Invalidate drops the session bound to ctx.
	Invalidate(ctx context.Context)
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Session    SessionProvider
	Logger     zerolog.Logger
}

// Client posts GraphQL documents to one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	session  SessionProvider
	logger   zerolog.Logger
}

// NewClient creates a new Client
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, apperrors.ErrNotConfig
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		session:  opts.Session,
		logger:   opts.Logger,
	}, nil
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do executes req and decodes the data payload into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	resp, err := c.Execute(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Decode unmarshals the data payload into out. A missing payload leaves out untouched.
func (r *Response) Decode(out interface{}) error {
	if out == nil || len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return &apperrors.TransportError{StatusCode: r.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// Execute sends req and returns the decoded envelope. The returned error is
// apperrors.ErrUnauthenticated, a *apperrors.GraphQLError or a
// *apperrors.TransportError; the response is returned alongside whenever one
// was received.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	op := operationName(req.Query)
	start := time.Now()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &apperrors.TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.session != nil {
		if token := c.session.Token(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("operation", op).Msg("GraphQL request failed")
		return nil, &apperrors.TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, &apperrors.TransportError{StatusCode: httpResp.StatusCode, Err: err}
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Cookies: httpResp.Cookies()}
	decodeErr := json.Unmarshal(body, resp)

	c.logger.Debug().
		Str("operation", op).
		Int("status", httpResp.StatusCode).
		Int("errors", len(resp.Errors)).
		Dur("duration", time.Since(start)).
		Msg("GraphQL request completed")

	if httpResp.StatusCode == http.StatusUnauthorized || hasAuthError(resp.Errors) {
		c.logger.Warn().Str("operation", op).Int("status", httpResp.StatusCode).Msg("Backend rejected session")
		if c.session != nil {
			c.session.Invalidate(ctx)
		}
		return resp, apperrors.ErrUnauthenticated
	}

	if len(resp.Errors) > 0 {
		return resp, &apperrors.GraphQLError{Errors: resp.Errors}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &apperrors.TransportError{StatusCode: httpResp.StatusCode, Body: snippet(body)}
	}

	if decodeErr != nil {
		return resp, &apperrors.TransportError{StatusCode: httpResp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	return resp, nil
}

// IsUnauthenticated reports whether a single GraphQL error means the session is gone.
func IsUnauthenticated(e apperrors.GraphQLMessage) bool {
	return unauthenticatedMessages[e.Message] || e.Code() == unauthenticatedCode
}

func hasAuthError(errs []apperrors.GraphQLMessage) bool {
	for _, e := range errs {
		if IsUnauthenticated(e) {
			return true
		}
	}
	return false
}

func operationName(query string) string {
	m := operationPattern.FindStringSubmatch(query)
	if m == nil {
		return "anonymous"
	}
	if m[2] != "" {
		return m[2]
	}
	return m[1]
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodySnippetLen {
		return s[:bodySnippetLen]
	}
	return s
}

// IsAuthError is a shorthand for errors.Is(err, apperrors.ErrUnauthenticated).
func IsAuthError(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthenticated)
}
