package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/ratelimit"
)

// Client is the shared HTTP fetch layer: user-agent rotation, optional
// proxy rotation, retry with backoff, and adaptive rate limiting. Both
// platform scrapers go through it.
type Client struct {
	http       *http.Client
	limiter    *ratelimit.AdaptiveRateLimiter
	userAgents []string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	proxies []*url.URL
	nextUA  int
}

func NewClient(cfg config.ScraperConfig, logger *slog.Logger) (*Client, error) {
	c := &Client{
		limiter:    ratelimit.NewAdaptiveRateLimiter(cfg.RateLimitMin, cfg.RateLimitMax),
		userAgents: cfg.UserAgents,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger.With("component", "http_client"),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, raw := range cfg.Proxies {
		if raw == "" {
			continue
		}
		proxy, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", raw, err)
		}
		c.proxies = append(c.proxies, proxy)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if len(c.proxies) > 0 {
		transport.Proxy = func(*http.Request) (*url.URL, error) {
			return c.pickProxy(), nil
		}
	}

	c.http = &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
	}
	return c, nil
}

// Get fetches one URL, honoring the rate limiter and retrying transient
// failures. Block and not-found responses map to the package sentinel
// errors so callers can tell them apart from transport failures.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying request", "url", rawURL, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.fetch(ctx, rawURL, headers)
		if err == nil {
			c.limiter.RecordSuccess()
			return body, nil
		}
		if err == ErrProductNotFound {
			return nil, err
		}

		c.limiter.RecordError()
		lastErr = err
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) fetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", c.pickUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrBlocked
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("server error: %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if looksLikeCaptcha(body) {
		return nil, ErrBlocked
	}
	return body, nil
}

func (c *Client) pickUserAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.userAgents) == 0 {
		return "Mozilla/5.0 (compatible; matching-score/1.0)"
	}
	ua := c.userAgents[c.nextUA%len(c.userAgents)]
	c.nextUA++
	return ua
}

func (c *Client) pickProxy() *url.URL {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proxies[c.rng.Intn(len(c.proxies))]
}

func looksLikeCaptcha(body []byte) bool {
	probe := body
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	page := strings.ToLower(string(probe))
	return strings.Contains(page, "captchacharacters") ||
		strings.Contains(page, "type the characters you see")
}
