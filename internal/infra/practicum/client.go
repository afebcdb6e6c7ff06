// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"homework_status_bot/internal/domain/homework"
)

// Client talks to the homework review API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for endpoint authorized with token.
// A nil httpClient means http.DefaultClient.
func NewClient(endpoint, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, token: token, httpClient: httpClient}
}

// FetchSubmissions requests homework statuses updated since cursor and returns
// the decoded JSON body. Any failure is a homework.KindAPI error; nothing is retried.
func (c *Client) FetchSubmissions(ctx context.Context, cursor int64) (any, error) {
	params := url.Values{"from_date": {strconv.FormatInt(cursor, 10)}}
	apiErr := func(status int, err error) error {
		return &homework.Error{
			Kind:       homework.KindAPI,
			Op:         "FetchSubmissions",
			Endpoint:   c.endpoint,
			Params:     params,
			StatusCode: status,
			Err:        err,
		}
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, apiErr(0, fmt.Errorf("invalid endpoint: %w", err))
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apiErr(0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apiErr(0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, apiErr(resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var body any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, apiErr(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return body, nil
}
