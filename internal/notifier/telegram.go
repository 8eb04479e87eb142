package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const telegramAPI = "https://api.telegram.org"

// TelegramPublisher sends messages via the Telegram Bot API.
type TelegramPublisher struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Client   *http.Client
}

// NewTelegramPublisher creates a publisher with optional proxy support.
func NewTelegramPublisher(botToken, chatID, proxyURL string, timeout time.Duration) *TelegramPublisher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramPublisher{
		BaseURL:  telegramAPI,
		BotToken: botToken,
		ChatID:   chatID,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (t *TelegramPublisher) Name() string { return "telegram" }

// Publish sends text to the configured chat.
func (t *TelegramPublisher) Publish(ctx context.Context, text string) Receipt {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id": t.ChatID,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return failed(t.Name(), "marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return failed(t.Name(), "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return failed(t.Name(), "send message: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return failed(t.Name(), "telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		OK     bool `json:"ok"`
		Result struct {
			MessageID int64 `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return failed(t.Name(), "decode response: %w", err)
	}
	if !result.OK {
		return failed(t.Name(), "telegram API returned ok=false: %s", string(respBody))
	}
	return Receipt{Channel: t.Name(), PostID: strconv.FormatInt(result.Result.MessageID, 10)}
}
