package models

import "time"

// Conversation roles stored in a user's history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a lead's conversation history.
type ChatMessage struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// User is a lead reachable over WhatsApp, keyed by local phone number ("05XXXXXXXX").
type User struct {
	ID        string        `bson:"id" json:"id"`
	UserPhone string        `bson:"userPhone" json:"userPhone"`
	UserName  string        `bson:"userName,omitempty" json:"userName,omitempty"`
	Email     string        `bson:"email,omitempty" json:"email,omitempty"`
	Messages  []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// SubmitDetailsRequest is the lead form payload.
type SubmitDetailsRequest struct {
	Phone string `json:"phone" form:"phone" binding:"required,ilphone"`
	Name  string `json:"name" form:"name"`
}

// ScheduleMessageRequest asks for a delayed welcome message.
type ScheduleMessageRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,ilphone"`
}
