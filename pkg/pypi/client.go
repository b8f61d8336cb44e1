// Package pypi answers Python 3 compatibility questions from the PyPI
// JSON API.
//
// A project counts as compatible when any of its trove classifiers sits
// under "Programming Language :: Python :: 3", or when it appears in the
// overrides set of projects known to be compatible despite missing
// classifiers. Projects the index has never heard of are reported as
// compatible with no dependencies: a name that is not on PyPI cannot be
// shown to block anything.
package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/py3ready/pkg/check"
	"github.com/matzehuels/py3ready/pkg/extract"
	"github.com/matzehuels/py3ready/pkg/httputil"
)

// DefaultBaseURL is the public PyPI JSON API.
const DefaultBaseURL = "https://pypi.org/pypi"

const (
	httpTimeout   = 10 * time.Second
	retryAttempts = 3
	retryDelay    = time.Second
	py3Classifier = "Programming Language :: Python :: 3"
)

var (
	// ErrNotFound is returned by lower-level lookups when a project does
	// not exist on the index. Query swallows it and reports the project
	// as compatible instead.
	ErrNotFound = errors.New("project not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses) that survive retrying.
	ErrNetwork = errors.New("network error")
)

var (
	markerRE = regexp.MustCompile(`;\s*(.+)`)
	skipRE   = regexp.MustCompile(`extra|dev|test`)
)

// Options configures a Client.
type Options struct {
	BaseURL   string               // index API root (default: DefaultBaseURL)
	Overrides map[string]string    // projects treated as compatible, name -> reason (default: DefaultOverrides)
	Logger    func(string, ...any) // diagnostic callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Overrides == nil {
		opts.Overrides = DefaultOverrides()
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Client queries the PyPI JSON API. It retries transient failures with
// exponential backoff and keeps no state between calls, so it is safe
// for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	overrides map[string]string
	logger    func(string, ...any)
	attempts  int
	delay     time.Duration
}

// NewClient creates a PyPI-backed compatibility oracle.
func NewClient(opts Options) *Client {
	opts = opts.WithDefaults()
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		baseURL:   opts.BaseURL,
		overrides: opts.Overrides,
		logger:    opts.Logger,
		attempts:  retryAttempts,
		delay:     retryDelay,
	}
}

// Query implements [check.Oracle]. The name is normalized before lookup;
// override hits short-circuit the network entirely.
func (c *Client) Query(ctx context.Context, name string) (check.Result, error) {
	name = extract.Normalize(name)

	if reason, ok := c.overrides[name]; ok {
		c.logger("%s: overridden as compatible (%s)", name, reason)
		return check.Result{Compatible: true}, nil
	}

	var res check.Result
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var data apiResponse
		if err := c.get(ctx, name, &data); err != nil {
			return err
		}
		res = check.Result{
			Compatible:   compatible(data.Info.Classifiers),
			Dependencies: extractDeps(data.Info.RequiresDist),
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		c.logger("%s: not on the index, assuming compatible", name)
		return check.Result{Compatible: true}, nil
	}
	if err != nil {
		return check.Result{}, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, name string, v any) error {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, name); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int, name string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// compatible reports whether any classifier declares Python 3 support.
// The prefix match covers versioned forms like ":: 3.12" and ":: 3 :: Only".
func compatible(classifiers []string) bool {
	for _, cls := range classifiers {
		if strings.HasPrefix(cls, py3Classifier) {
			return true
		}
	}
	return false
}

// extractDeps pulls normalized runtime dependency names from
// requires_dist entries, preserving index order. Entries whose
// environment marker mentions extras, dev, or test groups are skipped;
// other markers are ignored without being evaluated.
func extractDeps(requires []string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, req := range requires {
		if m := markerRE.FindStringSubmatch(req); len(m) > 1 && skipRE.MatchString(m[1]) {
			continue
		}
		if name, ok := extract.Name(req); ok && !seen[name] {
			seen[name] = true
			deps = append(deps, name)
		}
	}
	return deps
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Classifiers  []string `json:"classifiers"`
	RequiresDist []string `json:"requires_dist"`
}
