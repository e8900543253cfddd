// Package httpapi implements the engine's gateway interfaces over the
// school platform's HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var errNotFound = errors.New("resource not found")

// Client is one authenticated connection to the platform API. It is safe
// for use by all screens of a session.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	log     core.Logger
}

func NewClient(conf *core.Config, token string, log core.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: conf.HTTPTimeout},
		baseURL: conf.APIBaseURL,
		token:   token,
		log:     log,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding %s %s body", method, path)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return core.ErrSessionExpired
	case res.StatusCode == http.StatusNotFound:
		return errNotFound
	case res.StatusCode >= http.StatusBadRequest:
		if c.log != nil {
			c.log.Warn("upstream error", map[string]interface{}{
				"method": method, "path": path, "status": res.StatusCode,
			})
		}
		return errors.Errorf("%s %s: upstream responded %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "reading %s %s response", method, path)
	}
	if len(data) == 0 {
		// an empty body is a valid "nothing to show" response
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}
