package sluice

import (
	"strings"

	"github.com/tidwall/gjson"
)

// PayloadError is an error object a provider delivered in-band, as ordinary
// stream content, rather than via an HTTP-level failure status.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	return e.Message
}

// sniffPayloadError inspects one trimmed frame for an embedded error
// object. It strips a leading "data:" protocol prefix, then only considers
// payloads that look like a JSON object and expose error.message. Anything
// else, including malformed JSON, is not an error.
func sniffPayloadError(frame string) *PayloadError {
	payload := strings.TrimSpace(strings.TrimPrefix(frame, "data:"))
	if !strings.HasPrefix(payload, "{") {
		return nil
	}
	if !gjson.Valid(payload) {
		return nil
	}

	msg := gjson.Get(payload, "error.message")
	if !msg.Exists() {
		return nil
	}
	return &PayloadError{Message: msg.String()}
}
