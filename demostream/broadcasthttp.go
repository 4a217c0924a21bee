package demostream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/replaycore/s2demo/errs"
)

var _ DemoStream = (*HTTPBroadcastStream)(nil)

// RetryPolicy bounds how many times a broadcast fragment fetch is retried
// on a retriable error, and how the delay between attempts grows. Spec §9's
// open question on HTTP retry semantics is resolved here: a ceiling of 5
// retries, starting at a 250ms base delay, doubling, capped at 4s.
type RetryPolicy struct {
	// MaxAttempts counts retries after the first attempt, so a fetch is
	// tried at most MaxAttempts+1 times.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy is spec §9's resolved open question.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 250 * time.Millisecond, MaxDelay: 4 * time.Second}
}

// HTTPBroadcastStream fetches numbered fragments from a Source 2 broadcast
// relay (spec §4.11): GET <base>/<n>/start for the first fragment, then
// GET <base>/<n>/delta for each subsequent one, concatenating their bodies
// into one infinite, forward-only bytestream framed identically to
// BroadcastFileStream.
type HTTPBroadcastStream struct {
	frameReader
	buf bytes.Buffer

	client   *http.Client
	baseURL  string
	nextFrag int
	gotFirst bool
	retry    RetryPolicy
	appID    string
}

// HTTPOption configures an HTTPBroadcastStream at construction.
type HTTPOption func(*HTTPBroadcastStream)

// WithHTTPClient overrides the default 3-second-timeout client (spec §5).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPBroadcastStream) { s.client = c }
}

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) HTTPOption {
	return func(s *HTTPBroadcastStream) { s.retry = p }
}

// WithStartFragment begins fetching from fragment n instead of 0, for
// joining a broadcast already in progress.
func WithStartFragment(n int) HTTPOption {
	return func(s *HTTPBroadcastStream) { s.nextFrag = n }
}

// WithAppID sets the x-dota-steam-appid header spec §6 names as optional,
// letting callers target a broadcast relay serving more than one Steam app
// (Dota 2, Deadlock, CS2 all speak this protocol).
func WithAppID(appID string) HTTPOption {
	return func(s *HTTPBroadcastStream) { s.appID = appID }
}

// NewHTTPBroadcastStream constructs a stream against baseURL (e.g.
// "https://dist1-ord1.steamcontent.com/tv/500"). No network request is
// made until the first ReadCmdHeader call.
func NewHTTPBroadcastStream(baseURL string, opts ...HTTPOption) *HTTPBroadcastStream {
	s := &HTTPBroadcastStream{
		client:  &http.Client{Timeout: 3 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.frameReader.r = &s.buf
	return s
}

type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("s2demo: broadcast fragment fetch: status %d", e.StatusCode)
}

// isRetriable matches spec §4.11's "timeout, 404 during catch-up" retriable
// class; a 410 Gone means the fragment has rolled off the relay's buffer
// and is permanently unavailable.
func isRetriable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound || statusErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func (s *HTTPBroadcastStream) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if s.appID != "" {
		req.Header.Set("x-dota-steam-appid", s.appID)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return nil, fmt.Errorf("%w: fragment %d", errs.ErrFragmentGone, s.nextFrag)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// fetchNextFragment fetches and appends one fragment to the internal
// buffer, retrying retriable errors with exponential backoff up to
// s.retry.MaxAttempts times after the first attempt.
func (s *HTTPBroadcastStream) fetchNextFragment(ctx context.Context) error {
	kind := "delta"
	if !s.gotFirst {
		kind = "start"
	}
	url := fmt.Sprintf("%s/%d/%s", s.baseURL, s.nextFrag, kind)

	delay := s.retry.BaseDelay
	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxAttempts; attempt++ {
		body, err := s.fetchOnce(ctx, url)
		if err == nil {
			s.buf.Write(body)
			s.gotFirst = true
			s.nextFrag++
			return nil
		}
		if errors.Is(err, errs.ErrFragmentGone) {
			return err
		}
		if !isRetriable(err) {
			return fmt.Errorf("%w: %v", errs.ErrTransport, err)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > s.retry.MaxDelay {
			delay = s.retry.MaxDelay
		}
	}
	return fmt.Errorf("%w: %v", errs.ErrRetryExceeded, lastErr)
}

func (s *HTTPBroadcastStream) ensure(ctx context.Context, n int) error {
	for s.buf.Len() < n {
		if err := s.fetchNextFragment(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *HTTPBroadcastStream) ReadCmdHeader(ctx context.Context) (CmdHeader, error) {
	if err := s.ensure(ctx, broadcastHeaderSize); err != nil {
		return CmdHeader{}, err
	}
	return s.frameReader.readCmdHeader()
}

func (s *HTTPBroadcastStream) ReadCmd(ctx context.Context, hdr CmdHeader) ([]byte, error) {
	if err := s.ensure(ctx, int(hdr.BodySize)); err != nil {
		return nil, err
	}
	return s.frameReader.readCmd(hdr)
}

func (s *HTTPBroadcastStream) SkipCmd(ctx context.Context, hdr CmdHeader) error {
	if err := s.ensure(ctx, int(hdr.BodySize)); err != nil {
		return err
	}
	return s.frameReader.skipCmd(hdr)
}

// UnreadCmdHeader is not supported: the stream discards bytes once read and
// cannot rewind past the live fragment boundary.
func (s *HTTPBroadcastStream) UnreadCmdHeader(hdr CmdHeader) error {
	return fmt.Errorf("%w: broadcast stream cannot rewind", errs.ErrTransport)
}

// Seek is not supported for the same reason UnreadCmdHeader isn't.
func (s *HTTPBroadcastStream) Seek(ctx context.Context, pos int64) error {
	return fmt.Errorf("%w: broadcast stream cannot seek", errs.ErrTransport)
}

func (s *HTTPBroadcastStream) StreamPosition() int64     { return s.pos }
func (s *HTTPBroadcastStream) StreamLen() int64          { return -1 }
func (s *HTTPBroadcastStream) IsAtEOF() bool             { return false }
func (s *HTTPBroadcastStream) StartPosition() int64      { return 0 }
func (s *HTTPBroadcastStream) TotalTicks() (int32, bool) { return 0, false }
