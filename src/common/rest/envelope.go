package rest

import "encoding/json"

// Envelope is the backend's uniform response shape. Every endpoint wraps its payload
// in {success, data?, message?}; normalization happens here, once, instead of at each
// call site.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
