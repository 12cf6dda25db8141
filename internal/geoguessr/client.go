package geoguessr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public GeoGuessr endpoint.
	DefaultBaseURL = "https://www.geoguessr.com"

	challengesPath     = "/api/v3/challenges"
	highscoresPathTmpl = "/api/v3/results/highscores/%s"

	// sessionCookie carries the static session credential.
	sessionCookie = "_ncfa"
)

// ErrMalformedResponse marks a success status whose body lacked the
// fields we need.
var ErrMalformedResponse = errors.New("geoguessr: malformed response")

// APIError describes a failed remote call. StatusCode is zero for
// transport-level failures.
type APIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("geoguessr %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("geoguessr %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client talks to the GeoGuessr API. Each call is a single attempt with a
// bounded deadline; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	credential string
	http       *fasthttp.Client
	logger     *zap.Logger

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client authenticated with the given _ncfa credential.
func NewClient(credential string, opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		credential:     credential,
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 8},
		logger:         zap.NewNop(),
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateChallenge creates a challenge for the given map and settings and
// returns the opaque challenge token.
func (c *Client) CreateChallenge(ctx context.Context, mapID string, settings ModeSettings) (string, error) {
	req := createChallengeRequest{Map: mapID, ModeSettings: settings}
	var resp createChallengeResponse
	if err := c.doJSON(ctx, "create challenge", fasthttp.MethodPost, challengesPath, req, &resp); err != nil {
		return "", err
	}
	token := strings.TrimSpace(resp.Token)
	if token == "" {
		return "", &APIError{Op: "create challenge", Err: fmt.Errorf("%w: no token field", ErrMalformedResponse)}
	}
	return token, nil
}

// FetchResults returns the leaderboard payload for a challenge token.
func (c *Client) FetchResults(ctx context.Context, token string) (*Highscores, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &APIError{Op: "fetch results", Err: errors.New("empty challenge token")}
	}
	var hs Highscores
	path := fmt.Sprintf(highscoresPathTmpl, token)
	if err := c.doJSON(ctx, "fetch results", fasthttp.MethodGet, path, nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

// ChallengeURL builds the player-facing link for a challenge token.
func ChallengeURL(token string) string {
	return DefaultBaseURL + "/challenge/" + token
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in any, out any) error {
	url := c.baseURL + path
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(url)
	req.Header.SetContentType("application/json")
	if c.credential != "" {
		req.Header.SetCookie(sessionCookie, c.credential)
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		req.SetBody(payload)
	}

	deadline := c.computeDeadline(ctx)
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("geoguessr request failed", zap.String("op", op), zap.Error(err))
		return &APIError{Op: op, Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		body := truncate(string(resp.Body()), 512)
		c.logger.Warn("geoguessr request rejected", zap.String("op", op), zap.Int("status", status))
		return &APIError{Op: op, StatusCode: status, Err: fmt.Errorf("body=%s", body)}
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		clientDL := time.Now().Add(c.defaultTimeout)
		if dl.Before(clientDL) {
			return dl
		}
		return clientDL
	}
	return time.Now().Add(c.defaultTimeout)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
