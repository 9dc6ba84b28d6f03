// Package nervecord provides a Go client for the nerve-cord message broker.
package nervecord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a nerve-cord API client for one bot.
type Client struct {
	BaseURL    string
	Token      string
	BotName    string
	HTTPClient *http.Client
}

// Message mirrors the broker's message record.
type Message struct {
	ID        string     `json:"id"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Encrypted bool       `json:"encrypted"`
	Priority  string     `json:"priority"`
	Status    string     `json:"status"`
	ReplyTo   string     `json:"replyTo,omitempty"`
	Replies   []string   `json:"replies"`
	Created   time.Time  `json:"created"`
	Expires   time.Time  `json:"expires"`
	SeenAt    *time.Time `json:"seen_at"`
}

// Bot mirrors the broker's bot registration record.
type Bot struct {
	Name       string    `json:"name"`
	PublicKey  string    `json:"publicKey"`
	Registered time.Time `json:"registered"`
}

// APIError is a non-2xx broker response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nerve-cord: %s (status %d)", e.Message, e.StatusCode)
}

// NewClient creates a client. baseURL defaults to the local broker.
func NewClient(baseURL, token, botName string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9999"
	}
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		BotName:    botName,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs a JSON request and decodes the response into out (which may be
// nil). Error responses become *APIError.
func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// RegisterBot registers (or re-registers) a bot name with its public key.
func (c *Client) RegisterBot(name, publicKey string) (*Bot, error) {
	var bot Bot
	err := c.do(http.MethodPost, "/bots", map[string]string{
		"name":      name,
		"publicKey": publicKey,
	}, &bot)
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

// BotKey fetches a bot's registered public key for encrypting to it.
func (c *Client) BotKey(name string) (string, error) {
	var bot Bot
	if err := c.do(http.MethodGet, "/bots/"+url.PathEscape(name), nil, &bot); err != nil {
		return "", err
	}
	return bot.PublicKey, nil
}

// Send delivers ciphertext to another bot. The broker only accepts
// encrypted bodies, so callers must encrypt first (see EncryptMessage).
func (c *Client) Send(to, subject, ciphertext, priority string) (*Message, error) {
	var msg Message
	err := c.do(http.MethodPost, "/messages", map[string]any{
		"from":      c.BotName,
		"to":        to,
		"subject":   subject,
		"body":      ciphertext,
		"priority":  priority,
		"encrypted": true,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Reply answers a message; the broker fills in recipient, subject, and
// priority from the parent.
func (c *Client) Reply(id, ciphertext string) (*Message, error) {
	var msg Message
	err := c.do(http.MethodPost, "/messages/"+url.PathEscape(id)+"/reply", map[string]any{
		"from":      c.BotName,
		"body":      ciphertext,
		"encrypted": true,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Pending returns the bot's unread inbox, newest first. This is the poll the
// external scheduler runs between agent turns.
func (c *Client) Pending() ([]Message, error) {
	var msgs []Message
	path := "/messages?to=" + url.QueryEscape(c.BotName) + "&status=pending"
	if err := c.do(http.MethodGet, path, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkSeen acknowledges a message without replying.
func (c *Client) MarkSeen(id string) (*Message, error) {
	var msg Message
	if err := c.do(http.MethodPost, "/messages/"+url.PathEscape(id)+"/seen", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Burn retrieves a message and deletes it in one shot. The body comes back
// at most once; a repeat burn fails with a 404 APIError.
func (c *Client) Burn(id string) (*Message, error) {
	var msg Message
	if err := c.do(http.MethodPost, "/messages/"+url.PathEscape(id)+"/burn", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Heartbeat checks the bot in as alive.
func (c *Client) Heartbeat(version, skillVersion string) error {
	return c.do(http.MethodPost, "/heartbeat", map[string]string{
		"name":         c.BotName,
		"version":      version,
		"skillVersion": skillVersion,
	}, nil)
}

// Log appends an activity log entry.
func (c *Client) Log(text string, tags []string) error {
	return c.do(http.MethodPost, "/log", map[string]any{
		"from": c.BotName,
		"text": text,
		"tags": tags,
	}, nil)
}
