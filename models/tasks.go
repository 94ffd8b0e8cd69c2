package models

// WelcomePayload is the body of a delayed WhatsApp welcome job.
type WelcomePayload struct {
	ChatID  string `json:"chatId"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
