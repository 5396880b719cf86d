// Package messaging builds the WhatsApp deep link used to hand an order off
// to the restaurant's phone after it has been persisted.
package messaging

import (
	"fmt"
	"net/url"
)

type WhatsApp struct {
	// phone in international format, digits only (no "+", no spaces)
	phone string
}

func NewWhatsApp(phone string) *WhatsApp {
	return &WhatsApp{phone: phone}
}

// Link encodes the formatted order message into a wa.me URL. Opening it is
// the client's job; nothing here waits for the message to be sent.
func (w *WhatsApp) Link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.phone, url.QueryEscape(message))
}
