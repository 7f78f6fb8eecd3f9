package api

import "github.com/danielgtaylor/huma/v2"

// envelopeVersion is bumped when the envelope structure changes.
// The mobile client checks this before parsing.
const envelopeVersion = 1

// Envelope is the wire format wrapping every response body.
type Envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps outgoing bodies in the response envelope.
// Registered as a huma transformer on the API config.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
