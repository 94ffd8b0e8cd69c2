package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers the router needs.
type HandlerBundle struct {
	AdminSecret  []byte
	WebhookToken string

	// GreenAPI webhook
	WebhookHandler gin.HandlerFunc

	// Lead intake
	SubmitDetailsHandler   gin.HandlerFunc
	ScheduleMessageHandler gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler gin.HandlerFunc
	FreeSlotsHandler  gin.HandlerFunc
	BookHandler       gin.HandlerFunc
}
