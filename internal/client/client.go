// Package client talks to the gallery server: the artwork inventory, the
// asset pipeline and the account endpoints. Every failure it returns is
// classified with the common error kinds.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/erazemk/artverse/internal/common"
)

// ErrUnauthorized is wrapped into 401 responses so callers can tell a
// missing session from other transport failures.
var ErrUnauthorized = errors.New("unauthorized")

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger

	// Transport overrides the underlying round tripper. Tests use it.
	Transport http.RoundTripper
}

// Client is a gallery server client. It keeps the session cookie in its
// own jar; use Cookies and SetCookies to persist it between runs.
type Client struct {
	base      *url.URL
	http      *http.Client
	jar       http.CookieJar
	userAgent string
	log       *slog.Logger
}

// New returns a Client for the server at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must be http or https", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	next := opts.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	return &Client{
		base: base,
		jar:  jar,
		http: &http.Client{
			Transport: &loggingTransport{next: next, log: logger},
			Jar:       jar,
			Timeout:   opts.Timeout,
			// The account endpoints answer with redirects meant for a
			// browser; the status is all we need.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: opts.UserAgent,
		log:       logger,
	}, nil
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Cookies returns the session cookies currently held for the server.
func (c *Client) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.base)
}

// SetCookies restores previously saved session cookies.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.base, cookies)
}

func (c *Client) url(path string) string {
	return c.base.String() + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// send performs req and classifies the outcome. On success the caller
// owns the response body.
func (c *Client) send(req *http.Request, notFound string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, common.Transport("", fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return resp, nil
	}
	defer resp.Body.Close()

	msg := errorMessage(resp.Body)
	cause := fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusNotFound:
		if notFound != "" {
			return nil, &common.Error{Kind: common.ErrNotFound, Msg: notFound, Err: cause}
		}
		return nil, &common.Error{Kind: common.ErrNotFound, Msg: msg, Err: cause}
	case http.StatusUnauthorized:
		return nil, &common.Error{Kind: common.ErrTransport, Msg: msg, Err: errors.Join(ErrUnauthorized, cause)}
	default:
		return nil, common.Transport(msg, cause)
	}
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, notFound string) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	resp, err := c.send(req, notFound)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeJSON(resp.Body, out)
}

// decodeJSON decodes a response body into target. A malformed body is a
// transport failure.
func decodeJSON(r io.Reader, target any) error {
	if err := json.NewDecoder(r).Decode(target); err != nil {
		return common.Transport("", fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// errorMessage extracts the {"error": "..."} text of a failed response.
// Non-JSON bodies yield "", leaving the wording to the caller.
func errorMessage(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	if json.Unmarshal(data, &body) != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}

// result is the envelope of the mutation endpoints.
type result struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// check reports a {"success": false} body as a transport failure.
func (r result) check(op string) error {
	if r.Success != nil && !*r.Success {
		return common.Transport(r.Error, fmt.Errorf("%s: server reported failure", op))
	}
	return nil
}
