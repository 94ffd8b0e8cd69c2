package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{APIURL: srv.URL, IDInstance: "1101", TokenInstance: "tok"}, zap.NewNop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Config{IDInstance: "1"}, nil); err == nil {
		t.Fatal("expected error without token")
	}
}

func TestSendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/waInstance1101/sendMessage/tok" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["chatId"] != "972501234567@c.us" || body["message"] != "שלום" {
			t.Errorf("unexpected body %v", body)
		}
		_, _ = io.WriteString(w, `{"idMessage":"BAE5"}`)
	})

	id, err := c.SendMessage(context.Background(), "972501234567@c.us", "שלום")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "BAE5" {
		t.Fatalf("id = %q", id)
	}
}

func TestSendMessageEmptyChatID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := c.SendMessage(context.Background(), "", "x"); !errors.Is(err, ErrInvalidChatID) {
		t.Fatalf("want ErrInvalidChatID, got %v", err)
	}
}

func TestGatewayErrorOnNon2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "bad token")
	})

	_, err := c.SendMessage(context.Background(), "972501234567@c.us", "hi")
	var gerr *GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("want *GatewayError, got %T %v", err, err)
	}
	if gerr.Status != http.StatusForbidden || gerr.Body != "bad token" || gerr.Method != "sendMessage" {
		t.Fatalf("unexpected gateway error %+v", gerr)
	}
}

func TestSetSettings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/waInstance1101/setSettings/tok" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var s Settings
		_ = json.NewDecoder(r.Body).Decode(&s)
		if s.WebhookURL != "https://bot.example.com/webhooks" || s.IncomingWebhook != "yes" || s.StateWebhook != "yes" {
			t.Errorf("unexpected settings %+v", s)
		}
		_, _ = io.WriteString(w, `{"saveSettings":true}`)
	})
	if err := c.SetSettings(context.Background(), WebhookSettings("https://bot.example.com/webhooks", "")); err != nil {
		t.Fatalf("set settings: %v", err)
	}
}

func TestReceiveAndDeleteNotification(t *testing.T) {
	var deleted string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/waInstance1101/receiveNotification/tok":
			if r.URL.Query().Get("receiveTimeout") == "" {
				t.Errorf("receiveTimeout missing")
			}
			_, _ = io.WriteString(w, `{"receiptId":7,"body":{"typeWebhook":"incomingMessageReceived","idMessage":"X"}}`)
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			_, _ = io.WriteString(w, `{"result":true}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	q, err := c.ReceiveNotification(context.Background())
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if q == nil || q.ReceiptID != 7 || q.Body.IDMessage != "X" {
		t.Fatalf("unexpected notification %+v", q)
	}
	if err := c.DeleteNotification(context.Background(), q.ReceiptID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != "/waInstance1101/deleteNotification/tok/7" {
		t.Fatalf("deleted path = %q", deleted)
	}
}

func TestReceiveNotificationEmptyQueue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "null")
	})
	q, err := c.ReceiveNotification(context.Background())
	if err != nil || q != nil {
		t.Fatalf("want nil, nil; got %+v, %v", q, err)
	}
}

func TestDownloadFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("OggS"))
	})

	data, err := c.DownloadFile(context.Background(), c.baseURL+"/voice.oga")
	if err != nil || string(data) != "OggS" {
		t.Fatalf("download: %q, %v", data, err)
	}
	var gerr *GatewayError
	if _, err := c.DownloadFile(context.Background(), c.baseURL+"/missing"); !errors.As(err, &gerr) {
		t.Fatalf("want *GatewayError, got %v", err)
	}
}
