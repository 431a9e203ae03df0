package artist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sebuszqo/PaymentsService/internal/metrics"
)

const DefaultTimeout = 5 * time.Second

// Upper bound on an artist document.
const maxBodySize = 1 << 20

type Outcome int

const (
	// OutcomeResolved means the artists service answered with a name.
	OutcomeResolved Outcome = iota
	// OutcomeNotFound means the service answered but had no name for the id:
	// a 404, an empty body, a JSON null or a blank artisticName.
	OutcomeNotFound
	// OutcomeUnavailable covers transport errors, timeouts, other non-2xx
	// statuses and undecodable bodies.
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnavailable:
		return "unavailable"
	}
	return "unknown"
}

type Resolution struct {
	Outcome Outcome
	Name    string
	Err     error
}

func Resolved(name string) Resolution {
	return Resolution{Outcome: OutcomeResolved, Name: name}
}

func NotFound() Resolution {
	return Resolution{Outcome: OutcomeNotFound}
}

func Unavailable(err error) Resolution {
	return Resolution{Outcome: OutcomeUnavailable, Err: err}
}

type artistDTO struct {
	ID           int64  `json:"id"`
	ArtisticName string `json:"artisticName"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.PaymentMetrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.PaymentMetrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

// ResolveName performs a single GET {baseURL}/artists/{artistID}. It never
// retries; the caller decides what each outcome means.
func (c *Client) ResolveName(ctx context.Context, artistID int64) Resolution {
	start := time.Now()
	resolution := c.resolve(ctx, artistID)
	if c.metrics != nil {
		c.metrics.ArtistResolverDuration.Observe(time.Since(start).Seconds())
		c.metrics.ArtistResolverRequestsTotal.WithLabelValues(resolution.Outcome.String()).Inc()
	}
	return resolution
}

func (c *Client) resolve(ctx context.Context, artistID int64) Resolution {
	fullURL, err := url.JoinPath(c.baseURL, "artists", strconv.FormatInt(artistID, 10))
	if err != nil {
		return Unavailable(fmt.Errorf("invalid artists service URL: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return Unavailable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unavailable(fmt.Errorf("artists service request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return NotFound()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Unavailable(fmt.Errorf("artists service returned %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Unavailable(fmt.Errorf("reading artists service response: %w", err))
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return NotFound()
	}

	var artist *artistDTO
	if err := json.Unmarshal(body, &artist); err != nil {
		return Unavailable(fmt.Errorf("decoding artists service response: %w", err))
	}
	if artist == nil || strings.TrimSpace(artist.ArtisticName) == "" {
		return NotFound()
	}
	return Resolved(artist.ArtisticName)
}

// IsTimeout reports whether an Unavailable resolution was caused by a deadline.
func (r Resolution) IsTimeout() bool {
	if r.Err == nil {
		return false
	}
	if errors.Is(r.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(r.Err, &netErr) && netErr.Timeout()
}
