package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"outreach/models"

	"go.uber.org/zap"
)

const (
	defaultAPIURL   = "https://api.green-api.com"
	receiveTimeout  = 20
	maxDownloadSize = 16 << 20
)

// Config holds GreenAPI instance credentials.
type Config struct {
	APIURL        string
	IDInstance    string
	TokenInstance string
}

// Client is a GreenAPI REST client.
type Client struct {
	baseURL    string
	idInstance string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from explicit configuration.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.IDInstance == "" || cfg.TokenInstance == "" {
		return nil, fmt.Errorf("greenapi instance id and token are required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		idInstance: cfg.IDInstance,
		token:      cfg.TokenInstance,
		httpClient: &http.Client{Timeout: (receiveTimeout + 10) * time.Second},
		logger:     logger,
	}, nil
}

// methodURL builds {base}/waInstance{id}/{method}/{token}.
func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s", c.baseURL, c.idInstance, method, c.token)
}

// SendMessage sends a text message and returns GreenAPI's message id.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (string, error) {
	if chatID == "" {
		return "", ErrInvalidChatID
	}
	body := map[string]string{"chatId": chatID, "message": text}

	var out struct {
		IDMessage string `json:"idMessage"`
	}
	if err := c.do(ctx, http.MethodPost, "sendMessage", c.methodURL("sendMessage"), body, &out); err != nil {
		return "", err
	}
	c.logger.Debug("WhatsApp message sent", zap.String("chatId", chatID), zap.String("idMessage", out.IDMessage))
	return out.IDMessage, nil
}

// SetSettings updates the instance settings, typically the webhook URL.
func (c *Client) SetSettings(ctx context.Context, settings Settings) error {
	var out struct {
		SaveSettings bool `json:"saveSettings"`
	}
	if err := c.do(ctx, http.MethodPost, "setSettings", c.methodURL("setSettings"), settings, &out); err != nil {
		return err
	}
	if !out.SaveSettings {
		return fmt.Errorf("greenapi setSettings: settings were not saved")
	}
	return nil
}

// ReceiveNotification long-polls the instance queue. A nil result with a nil
// error means the queue was empty.
func (c *Client) ReceiveNotification(ctx context.Context) (*models.QueuedNotification, error) {
	url := c.methodURL("receiveNotification") + "?receiveTimeout=" + strconv.Itoa(receiveTimeout)

	var out *models.QueuedNotification
	if err := c.do(ctx, http.MethodGet, "receiveNotification", url, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteNotification acknowledges a queued notification.
func (c *Client) DeleteNotification(ctx context.Context, receiptID int64) error {
	url := c.methodURL("deleteNotification") + "/" + strconv.FormatInt(receiptID, 10)

	var out struct {
		Result bool `json:"result"`
	}
	return c.do(ctx, http.MethodDelete, "deleteNotification", url, nil, &out)
}

// DownloadFile fetches media referenced by a file message.
func (c *Client) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{Method: "downloadFile", Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, httpMethod, apiMethod, url string, in, out any) error {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("greenapi %s: %w", apiMethod, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{Method: apiMethod, Status: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("greenapi %s: decode response: %w", apiMethod, err)
	}
	return nil
}
