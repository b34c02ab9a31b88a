// Package embedmsg defines the typed messages exchanged between a host
// page and the embedded donation frame. Every inbound message is gated on
// an exact origin match before it is even parsed.
package embedmsg

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind discriminates the message envelope.
type Kind string

const (
	KindConfig          Kind = "config"
	KindDonationSuccess Kind = "donation_success"
	KindDonationError   Kind = "donation_error"
	KindWidgetResize    Kind = "widget_resize"
)

// ErrOriginMismatch means the message came from an origin other than the
// configured remote origin and was discarded unread.
var ErrOriginMismatch = errors.New("message origin does not match allowed origin")

// Message is the wire envelope. Exactly one of Config, Payload, or Height
// is meaningful depending on Type.
type Message struct {
	Type    Kind            `json:"type"`
	Config  *WidgetConfig   `json:"config,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Height  int             `json:"height,omitempty"`
}

// WidgetConfig is pushed from the host page into the frame once loaded.
type WidgetConfig struct {
	StripeKey     string        `json:"stripeKey"`
	Customization Customization `json:"customization"`
}

// Customization carries the host's branding overrides for the widget.
type Customization struct {
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
	Title        string `json:"title,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	// Variant is "embedded" or "standalone".
	Variant string `json:"variant,omitempty"`
}

// Decode parses a raw message after checking its origin. A message whose
// origin differs from allowedOrigin is discarded unconditionally, whatever
// its contents.
func Decode(raw []byte, origin, allowedOrigin string) (Message, error) {
	if allowedOrigin == "" || origin != allowedOrigin {
		return Message{}, ErrOriginMismatch
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("decode embed message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("embed message missing type")
	}
	return msg, nil
}

// Bridge binds the message protocol to the configured remote origin so
// callers cannot forget the origin gate.
type Bridge struct {
	allowedOrigin string
}

// NewBridge creates a bridge for the given remote origin. An empty origin
// yields a bridge that discards every inbound message.
func NewBridge(allowedOrigin string) *Bridge {
	return &Bridge{allowedOrigin: allowedOrigin}
}

// Decode parses a raw inbound message after checking its origin against
// the bridge's configured remote origin.
func (b *Bridge) Decode(raw []byte, origin string) (Message, error) {
	return Decode(raw, origin, b.allowedOrigin)
}

// ConfigMessage builds the config push the host script injects into the
// frame once it loads.
func (b *Bridge) ConfigMessage(stripeKey string, custom Customization) Message {
	return NewConfigMessage(WidgetConfig{StripeKey: stripeKey, Customization: custom})
}

// NewConfigMessage builds the config push sent to the frame on load.
func NewConfigMessage(cfg WidgetConfig) Message {
	return Message{Type: KindConfig, Config: &cfg}
}

// NewDonationSuccessMessage wraps the success payload forwarded to the
// host's callback.
func NewDonationSuccessMessage(payload any) (Message, error) {
	return withPayload(KindDonationSuccess, payload)
}

// NewDonationErrorMessage wraps the failure payload forwarded to the
// host's callback.
func NewDonationErrorMessage(payload any) (Message, error) {
	return withPayload(KindDonationError, payload)
}

// NewResizeMessage tells the host to adjust the frame height.
func NewResizeMessage(height int) Message {
	return Message{Type: KindWidgetResize, Height: height}
}

func withPayload(kind Kind, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Message{Type: kind, Payload: raw}, nil
}
