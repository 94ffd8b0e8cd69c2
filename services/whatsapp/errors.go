package whatsapp

import (
	"errors"
	"fmt"
)

// ErrInvalidChatID is returned when a phone number cannot be turned into a chat id.
var ErrInvalidChatID = errors.New("invalid whatsapp chat id")

// GatewayError is a non-2xx answer from GreenAPI.
type GatewayError struct {
	Method string
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("greenapi %s: status %d: %s", e.Method, e.Status, e.Body)
}
