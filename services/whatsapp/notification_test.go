package whatsapp

import (
	"testing"

	"outreach/models"
)

func TestParseNotification(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		ok     bool
		text   string
		mtype  string
		chatID string
		url    string
	}{
		{
			name: "text",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"A1","timestamp":1700000000,
				"senderData":{"chatId":"972501234567@c.us","sender":"972501234567@c.us","senderName":"Dana"},
				"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"  hello  "}}}`,
			ok: true, text: "hello", mtype: models.MessageTypeText, chatID: "972501234567@c.us",
		},
		{
			name: "extended text",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"A2",
				"senderData":{"chatId":"972501234567@c.us","sender":"972501234567@c.us"},
				"messageData":{"typeMessage":"extendedTextMessage","extendedTextMessageData":{"text":"https://example.com"}}}`,
			ok: true, text: "https://example.com", mtype: models.MessageTypeExtendedText, chatID: "972501234567@c.us",
		},
		{
			name: "voice note",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"A3",
				"senderData":{"chatId":"972501234567@c.us","sender":"972501234567@c.us"},
				"messageData":{"typeMessage":"audioMessage","fileMessageData":{"downloadUrl":"https://files/x.oga","mimeType":"audio/ogg"}}}`,
			ok: true, mtype: models.MessageTypeAudio, chatID: "972501234567@c.us", url: "https://files/x.oga",
		},
		{
			name: "chat id falls back to sender",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"A4",
				"senderData":{"sender":"972501234567@c.us"},
				"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"hi"}}}`,
			ok: true, text: "hi", mtype: models.MessageTypeText, chatID: "972501234567@c.us",
		},
		{
			name: "state change",
			body: `{"typeWebhook":"stateInstanceChanged","stateInstance":"authorized"}`,
		},
		{
			name: "outgoing message",
			body: `{"typeWebhook":"outgoingMessageReceived","idMessage":"B1",
				"senderData":{"chatId":"972501234567@c.us"},
				"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"hi"}}}`,
		},
		{
			name: "image unsupported",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"C1",
				"senderData":{"chatId":"972501234567@c.us"},
				"messageData":{"typeMessage":"imageMessage","fileMessageData":{"downloadUrl":"https://files/x.jpg"}}}`,
		},
		{
			name: "blank text",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"C2",
				"senderData":{"chatId":"972501234567@c.us"},
				"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"   "}}}`,
		},
		{
			name: "missing message data",
			body: `{"typeWebhook":"incomingMessageReceived","idMessage":"C3","senderData":{"chatId":"972501234567@c.us"}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := DecodeNotification([]byte(tc.body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			msg, ok := ParseNotification(n)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if msg.Text != tc.text || msg.MessageType != tc.mtype || msg.ChatID != tc.chatID || msg.DownloadURL != tc.url {
				t.Fatalf("unexpected message: %+v", msg)
			}
		})
	}
}

func TestDecodeNotificationRejectsGarbage(t *testing.T) {
	if _, err := DecodeNotification([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := ParseNotification(nil); ok {
		t.Fatal("nil notification parsed")
	}
}
