package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// APIError is a transport- or HTTP-level failure from the backend. Soft
// failures (2xx with success:false) are not errors; callers branch on the
// envelope instead.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the single point of HTTP access to the GameCraft backend. Server
// session state rides on cookies held in the jar; every request carries them.
type Client struct {
	baseURL string
	hc      *http.Client
	limiter *hostLimiter

	Auth         AuthAPI
	Applications ApplicationsAPI
	Admin        AdminAPI
	Positions    PositionsAPI
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout: 20 * time.Second,
			Jar:     jar,
		},
		limiter: newHostLimiter(4.0, 8),
	}
	c.Auth = AuthAPI{c: c}
	c.Applications = ApplicationsAPI{c: c}
	c.Admin = AdminAPI{c: c}
	c.Positions = PositionsAPI{c: c}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// do issues one JSON request. The body is decoded into out regardless of
// HTTP status so a non-2xx response can still surface the server's message;
// a non-2xx status always returns an *APIError. No retries happen here.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	url := c.baseURL + endpoint

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "GameCraftEngine/1.0 (+local)")

	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		log.Printf("level=error msg=\"api request failed\" method=%s endpoint=%s err=%v", method, endpoint, err)
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		log.Printf("level=error msg=\"api read failed\" method=%s endpoint=%s err=%v", method, endpoint, err)
		return fmt.Errorf("%s %s: read body: %w", method, endpoint, err)
	}

	// Parse first; error bodies carry the server's message.
	var decodeErr error
	if out != nil && len(raw) > 0 {
		decodeErr = json.Unmarshal(raw, out)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := messageFrom(raw)
		if msg == "" {
			msg = fmt.Sprintf("HTTP error %d", res.StatusCode)
		}
		log.Printf("level=error msg=\"api status\" method=%s endpoint=%s status=%d server_msg=%q", method, endpoint, res.StatusCode, msg)
		return &APIError{Status: res.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		log.Printf("level=error msg=\"api decode failed\" method=%s endpoint=%s err=%v", method, endpoint, decodeErr)
		return fmt.Errorf("%s %s: decode response: %w", method, endpoint, decodeErr)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

func messageFrom(raw []byte) string {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Err
}
