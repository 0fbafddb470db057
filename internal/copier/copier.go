// Package copier implements fetch-and-copy: retrieve a raw text document over
// HTTP and place it on a clipboard.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

// DefaultUserAgent identifies the fetcher to remote hosts.
const DefaultUserAgent = "sqlgallery/1.0"

// Clipboard is a destination for copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Reporter receives every fetch-and-copy failure. Implementations must not
// block for long; they run on the caller's goroutine.
type Reporter interface {
	Report(ctx context.Context, err *Error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err *Error)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, err *Error) {
	f(ctx, err)
}

// Copier performs fetch-and-copy. Invocations are independent and safe to
// run concurrently; there is no de-duplication, so the last clipboard write
// wins.
type Copier struct {
	client    *http.Client
	reporter  Reporter
	userAgent string
	timeout   time.Duration
}

// Option configures a Copier.
type Option func(*Copier)

// WithHTTPClient sets the HTTP client used for retrieval.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Copier) {
		if client != nil {
			c.client = client
		}
	}
}

// WithReporter sets the failure reporter.
func WithReporter(r Reporter) Option {
	return func(c *Copier) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithTimeout bounds each retrieval. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Copier) {
		c.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Copier) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Copier. Without options it uses a client with no timeout and
// reports failures through LogReporter.
func New(opts ...Option) *Copier {
	c := &Copier{
		client:    &http.Client{},
		reporter:  LogReporter{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves url and returns its body as text. Failures are returned as
// *Error and are not reported.
func (c *Copier) Fetch(ctx context.Context, url string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", &Error{
			Kind:       KindStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if !utf8.Valid(body) {
		return "", &Error{Kind: KindDecode, URL: url, Err: errors.New("body is not valid UTF-8 text")}
	}

	return string(body), nil
}

// Copy fetches url and writes the text to cb. It returns the number of bytes
// written. On failure the clipboard is left untouched, the error is passed
// to the reporter and then returned.
func (c *Copier) Copy(ctx context.Context, url string, cb Clipboard) (int, error) {
	text, err := c.Fetch(ctx, url)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			c.report(ctx, ce)
		}
		return 0, err
	}

	if err := cb.WriteText(ctx, text); err != nil {
		ce := &Error{Kind: KindClipboard, URL: url, Err: err}
		c.report(ctx, ce)
		return 0, ce
	}

	return len(text), nil
}

func (c *Copier) report(ctx context.Context, err *Error) {
	// The caller went away; nobody is waiting for this completion.
	if ctx.Err() != nil {
		slog.DebugContext(ctx, "fetch and copy abandoned", "url", err.URL, "error", err)
		return
	}
	c.reporter.Report(ctx, err)
}

// LogReporter writes failures to the default slog logger.
type LogReporter struct{}

// Report logs err at error level.
func (LogReporter) Report(ctx context.Context, err *Error) {
	attrs := []any{
		"kind", err.Kind,
		"url", err.URL,
		"error", err.Err,
	}
	if err.StatusCode != 0 {
		attrs = append(attrs, "status", err.StatusCode)
	}
	slog.ErrorContext(ctx, "fetch and copy failed", attrs...)
}
