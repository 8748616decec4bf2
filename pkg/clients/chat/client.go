package chat

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
)

// Client exposes the chat-channel operations used by the application. The
// channel is a plain incoming-webhook endpoint: it accepts text content and
// optional structured embeds.
type Client interface {
	SendMessage(ctx context.Context, msg Message) error
}

// Message is one outbound chat post.
type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a structured block rendered by the chat client.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a chat webhook client from configuration.
func NewClient(cfg config.ChatConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// SendMessage posts the message to the configured webhook.
func (c *WebhookClient) SendMessage(ctx context.Context, msg Message) error {
	if c.webhookURL == "" {
		return fmt.Errorf("chat webhook url not configured")
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post chat message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("chat webhook error: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
