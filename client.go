package passwords

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/maypok86/otter"
)

const (
	apiRoot          = "/index.php/apps/passwords/api/"
	defaultUserAgent = "passwords-go"

	defaultImageCacheSize = 256
	defaultImageCacheTTL  = 10 * time.Minute
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient    *http.Client
	middleware    []func(http.RoundTripper) http.RoundTripper
	logger        *slog.Logger
	now           func() time.Time
	userAgent     string
	imageCacheTTL time.Duration
}

// WithHTTPClient sets the HTTP client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithMiddleware wraps the HTTP transport, outermost first.
func WithMiddleware(mw ...func(http.RoundTripper) http.RoundTripper) Option {
	return func(c *clientConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithLogger sets the logger for session transitions. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithClock overrides the time source used for keepalive bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.now = now
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithImageCacheTTL sets how long avatars, favicons and previews are cached.
// Zero disables the cache.
func WithImageCacheTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		c.imageCacheTTL = d
	}
}

// Client talks to one Passwords server on behalf of one user.
// It is safe for concurrent use.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	userAgent  string
	images     *otter.Cache[string, []byte]

	// transition serialises login, refresh and disconnect.
	transition sync.Mutex

	mu      sync.RWMutex
	session *SessionState
}

// New returns an unauthenticated client for the server at serverURL,
// e.g. "https://cloud.example.com".
func New(serverURL string, opts ...Option) (*Client, error) {
	base, err := parseServerURL(serverURL)
	if err != nil {
		return nil, wrapError("new", err)
	}

	cfg := &clientConfig{
		userAgent:     defaultUserAgent,
		imageCacheTTL: defaultImageCacheTTL,
	}
	for _, o := range opts {
		o(cfg)
	}

	c := &Client{
		base:      base,
		logger:    cfg.logger,
		now:       cfg.now,
		userAgent: cfg.userAgent,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if len(cfg.middleware) > 0 {
		rt := hc.Transport
		if rt == nil {
			rt = http.DefaultTransport
		}
		for i := len(cfg.middleware) - 1; i >= 0; i-- {
			rt = cfg.middleware[i](rt)
		}
		wrapped := *hc
		wrapped.Transport = rt
		hc = &wrapped
	}
	c.httpClient = hc

	if cfg.imageCacheTTL > 0 {
		cache, err := otter.MustBuilder[string, []byte](defaultImageCacheSize).
			WithTTL(cfg.imageCacheTTL).
			Build()
		if err != nil {
			return nil, wrapError("new", err)
		}
		c.images = &cache
	}

	return c, nil
}

// ServerURL returns the normalised server URL.
func (c *Client) ServerURL() string {
	return c.base.String()
}

func parseServerURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, Errorf(KindInvalidArgument, "server url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(KindInvalidArgument, "server url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, Errorf(KindInvalidArgument, "server url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func (c *Client) apiURL(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + apiRoot + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) String() string {
	return fmt.Sprintf("passwords.Client(%s)", c.base)
}
