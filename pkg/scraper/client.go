package scraper

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var baseURL = "https://intranet.wiut.uz"

const (
	loginPath     = "/Account/Login"
	timetablePath = "/TimeTableNew/GetLessons"
)

// ClientConfig controls how the intranet is accessed.
type ClientConfig struct {
	// Delay is the minimum spacing between two requests.
	Delay time.Duration
	// Jitter adds a random extra wait of up to this much before each request.
	Jitter time.Duration
	// NoCache disables the on-disk timetable cache.
	NoCache bool
	Logger  *zap.Logger
}

// DefaultClientConfig paces requests a few seconds apart.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Delay:  2 * time.Second,
		Jitter: 3 * time.Second,
	}
}

// Client handles the logged-in session with the university intranet.
// Requests are serialized: only one is ever in flight.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	jitter  time.Duration
	noCache bool
	log     *zap.Logger

	mu sync.Mutex
}

// NewClient creates a new scraper client with its own cookie jar
func NewClient(cfg ClientConfig) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	c := &Client{
		limiter: rate.NewLimiter(limit, 1),
		jitter:  cfg.Jitter,
		noCache: cfg.NoCache,
		log:     log.Named("scraper"),
	}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(jar).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36").
		SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname())).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if res == nil {
				return false
			}
			switch res.StatusCode() {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return true
			}
			return false
		}).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return c.pace(req.Context())
		})

	return c, nil
}

// pace blocks until the next request may be sent.
func (c *Client) pace(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if c.jitter <= 0 {
		return nil
	}

	wait := time.Duration(rand.Int63n(int64(c.jitter)))
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// send runs one request while holding the session lock and checks the status.
func (c *Client) send(ctx context.Context, method, path string, prepare func(*resty.Request)) (*resty.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := c.http.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	res, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode()),
		zap.Duration("took", time.Since(start)),
	)

	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", res.StatusCode(), path)
	}
	return res, nil
}

// landedOnLogin reports whether the final response after redirects is the login form.
func landedOnLogin(res *resty.Response) bool {
	if res.RawResponse == nil || res.RawResponse.Request == nil {
		return false
	}
	return strings.HasPrefix(res.RawResponse.Request.URL.Path, loginPath)
}

// Login signs into the intranet. The session cookie is kept for later requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: missing username or password", ErrLoginRejected)
	}

	res, err := c.send(ctx, resty.MethodPost, loginPath, func(r *resty.Request) {
		r.SetQueryParam("ReturnUrl", "/")
		r.SetFormData(map[string]string{
			"UserID":   username,
			"Password": password,
		})
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if landedOnLogin(res) {
		return fmt.Errorf("login failed for %s: %w", username, ErrLoginRejected)
	}

	c.log.Info("logged in", zap.String("user", username))
	return nil
}

// getDocument fetches a page of the logged-in area and parses it.
func (c *Client) getDocument(ctx context.Context, path string, query map[string]string) (*goquery.Document, error) {
	res, err := c.send(ctx, resty.MethodGet, path, func(r *resty.Request) {
		r.SetQueryParams(query)
	})
	if err != nil {
		return nil, err
	}
	if landedOnLogin(res) {
		return nil, ErrNotLoggedIn
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// FetchDocument downloads the raw timetable page of a group id.
func (c *Client) FetchDocument(ctx context.Context, groupID string) (*goquery.Document, error) {
	return c.getDocument(ctx, timetablePath, map[string]string{"classid": groupID})
}
