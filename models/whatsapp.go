package models

// GreenAPI webhook and message types.
const (
	WebhookIncomingMessage = "incomingMessageReceived"

	MessageTypeText         = "textMessage"
	MessageTypeExtendedText = "extendedTextMessage"
	MessageTypeAudio        = "audioMessage"
	MessageTypeImage        = "imageMessage"
	MessageTypeLocation     = "locationMessage"
)

// Notification is the raw GreenAPI webhook body.
type Notification struct {
	TypeWebhook   string        `json:"typeWebhook"`
	InstanceData  *InstanceData `json:"instanceData,omitempty"`
	Timestamp     int64         `json:"timestamp"`
	IDMessage     string        `json:"idMessage"`
	SenderData    *SenderData   `json:"senderData,omitempty"`
	MessageData   *MessageData  `json:"messageData,omitempty"`
	StateInstance string        `json:"stateInstance,omitempty"`
}

// InstanceData identifies the GreenAPI instance that produced a notification.
type InstanceData struct {
	IDInstance   int64  `json:"idInstance"`
	WID          string `json:"wid"`
	TypeInstance string `json:"typeInstance"`
}

// SenderData identifies who sent a message.
type SenderData struct {
	ChatID     string `json:"chatId"`
	Sender     string `json:"sender"`
	SenderName string `json:"senderName"`
}

// MessageData carries the typed message payload.
type MessageData struct {
	TypeMessage             string                   `json:"typeMessage"`
	TextMessageData         *TextMessageData         `json:"textMessageData,omitempty"`
	ExtendedTextMessageData *ExtendedTextMessageData `json:"extendedTextMessageData,omitempty"`
	FileMessageData         *FileMessageData         `json:"fileMessageData,omitempty"`
}

type TextMessageData struct {
	TextMessage string `json:"textMessage"`
}

type ExtendedTextMessageData struct {
	Text string `json:"text"`
}

type FileMessageData struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	Caption     string `json:"caption"`
}

// QueuedNotification wraps a notification pulled from the GreenAPI queue.
type QueuedNotification struct {
	ReceiptID int64        `json:"receiptId"`
	Body      Notification `json:"body"`
}

// IncomingMessage is a notification reduced to what the conversation flow needs.
type IncomingMessage struct {
	IDMessage   string
	ChatID      string
	SenderID    string
	SenderName  string
	MessageType string
	Text        string
	DownloadURL string
}
