// Package simulator talks to the transaction-simulation API that serves
// per-transaction storage diffs.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NethermindEth/netdiff/statediff"
	"github.com/NethermindEth/netdiff/utils"
)

type Backoff func(wait time.Duration) time.Duration

type Client struct {
	url        string
	client     *http.Client
	backoff    Backoff
	maxRetries int
	maxWait    time.Duration
	minWait    time.Duration
	log        utils.SimpleLogger
	userAgent  string
	accessKey  string
}

func (c *Client) WithBackoff(b Backoff) *Client {
	c.backoff = b
	return c
}

func (c *Client) WithMaxRetries(num int) *Client {
	c.maxRetries = num
	return c
}

func (c *Client) WithMaxWait(d time.Duration) *Client {
	c.maxWait = d
	return c
}

func (c *Client) WithMinWait(d time.Duration) *Client {
	c.minWait = d
	return c
}

func (c *Client) WithLogger(log utils.SimpleLogger) *Client {
	c.log = log
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

func (c *Client) WithAccessKey(key string) *Client {
	c.accessKey = key
	return c
}

func (c *Client) WithTimeout(t time.Duration) *Client {
	c.client.Timeout = t
	return c
}

func ExponentialBackoff(wait time.Duration) time.Duration {
	return wait * 2
}

func NopBackoff(d time.Duration) time.Duration {
	return 0
}

func NewClient(clientURL string) *Client {
	return &Client{
		url:        strings.TrimSuffix(clientURL, "/"),
		client:     &http.Client{Timeout: 30 * time.Second},
		backoff:    ExponentialBackoff,
		maxRetries: 3,
		maxWait:    4 * time.Second,
		minWait:    500 * time.Millisecond,
		log:        utils.NewNopZapLogger(),
	}
}

// NewTestClient returns a client backed by a test server that serves the
// documents under testdata, keyed by transaction hash.
func NewTestClient(t *testing.T) *Client {
	srv := newTestServer()
	t.Cleanup(srv.Close)

	return NewClient(srv.URL).WithBackoff(NopBackoff).WithMaxRetries(0)
}

func newTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hash := strings.TrimPrefix(r.URL.Path, "/tx/")

		doc, err := os.ReadFile(filepath.Join("testdata", filepath.Base(hash)+".json"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("transaction not found"))
			return
		}
		_, _ = w.Write(doc)
	}))
}

// get performs a "GET" http request with the given URL and returns the response body
func (c *Client) get(ctx context.Context, queryURL string) (io.ReadCloser, error) {
	var res *http.Response
	var err error
	wait := time.Duration(0)
	for i := 0; i <= c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
			var req *http.Request
			req, err = http.NewRequestWithContext(ctx, http.MethodGet, queryURL, http.NoBody)
			if err != nil {
				return nil, err
			}
			if c.userAgent != "" {
				req.Header.Set("User-Agent", c.userAgent)
			}
			if c.accessKey != "" {
				req.Header.Set("X-Access-Key", c.accessKey)
			}

			res, err = c.client.Do(req)
			if err == nil {
				if res.StatusCode == http.StatusOK {
					return res.Body, nil
				}

				reason, _ := io.ReadAll(res.Body)
				res.Body.Close()
				err = fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(reason)))
				if res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError &&
					res.StatusCode != http.StatusTooManyRequests {
					// The request itself is wrong; retrying will not help.
					return nil, err
				}
			}

			if wait < c.minWait {
				wait = c.minWait
			} else {
				wait = min(c.backoff(wait), c.maxWait)
			}
			c.log.Debugw("Failed query to simulator, retrying...",
				"req", queryURL,
				"retryAfter", wait.String(),
				"err", err,
			)
		}
	}
	return nil, err
}

// TransactionStateDiff fetches the simulated storage diff of the transaction
// with the given hash. The raw slot values are passed through exactly as the
// API reports them.
func (c *Client) TransactionStateDiff(ctx context.Context, hash string) (*statediff.Transaction, error) {
	body, err := c.get(ctx, c.url+"/tx/"+hash)
	if err != nil {
		return nil, fmt.Errorf("fetch state diff for transaction %s: %w", hash, err)
	}
	defer body.Close()

	tx := new(statediff.Transaction)
	if err = json.NewDecoder(body).Decode(tx); err != nil {
		return nil, fmt.Errorf("decode state diff for transaction %s: %w", hash, err)
	}
	return tx, nil
}
