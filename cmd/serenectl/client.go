package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// apiClient is a thin REST client for the serene service.
type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &apiClient{http: c}
}

// do sends the request and pretty-prints the JSON body to out.
// Non-2xx answers are returned as errors carrying the server's detail.
func (c *apiClient) do(method, path string, query map[string]string, body any, out io.Writer) error {
	req := c.http.R().SetQueryParams(query)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(resp.Body(), &e) == nil && e.Detail != "" {
			return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode(), e.Detail)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode())
	}
	return writePretty(out, resp.Body())
}

func writePretty(out io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := out.Write(raw)
		return werr
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}
