package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dghubble/oauth1"
)

const xAPI = "https://api.twitter.com"

// XCredentials are the OAuth 1.0a user-context secrets of the posting account.
type XCredentials struct {
	AppKey       string
	AppSecret    string
	AccessToken  string
	AccessSecret string
}

// XPublisher posts via the X API v2 create-post endpoint.
type XPublisher struct {
	BaseURL string
	Client  *http.Client
}

// NewXPublisher builds a publisher whose client signs every request with creds.
func NewXPublisher(creds XCredentials, proxyURL string, timeout time.Duration) *XPublisher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cfg := oauth1.NewConfig(creds.AppKey, creds.AppSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	base := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: transport})
	client := cfg.Client(base, token)
	client.Timeout = timeout

	return &XPublisher{BaseURL: xAPI, Client: client}
}

func (p *XPublisher) Name() string { return "x" }

type xCreatePostResponse struct {
	Data *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

// Publish creates one post with the given text.
func (p *XPublisher) Publish(ctx context.Context, text string) Receipt {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return failed(p.Name(), "marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return failed(p.Name(), "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return failed(p.Name(), "create post: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	var out xCreatePostResponse
	decodeErr := json.Unmarshal(respBody, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Detail != "" {
			return failed(p.Name(), "x API error: status %d: %s: %s", resp.StatusCode, out.Title, out.Detail)
		}
		return failed(p.Name(), "x API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if decodeErr != nil {
		return failed(p.Name(), "decode response: %w", decodeErr)
	}
	if out.Data == nil {
		return failed(p.Name(), "x API returned no data: %s", string(respBody))
	}
	return Receipt{Channel: p.Name(), PostID: out.Data.ID}
}
