// Package services implements one service group per Verto API resource.
//
// This file defines the error types shared by all services: APIError for
// non-2xx responses carrying the server's message, and DecodeError for
// success responses whose body could not be parsed.
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError represents a non-success response from the Verto API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("verto api error (status %d): %s", e.StatusCode, e.Message)
}

// DecodeError represents a success response whose body could not be decoded
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError from a non-2xx response. The server sends an
// optional {"message": string | string[]} body; message arrays are joined
// with ", ". Anything unparseable falls back to the HTTP status text.
func newAPIError(resp *http.Response) *APIError {
	fallback := http.StatusText(resp.StatusCode)
	if fallback == "" {
		fallback = "request failed"
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return apiErr
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil && single != "" {
		apiErr.Message = single
		return apiErr
	}

	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil && len(many) > 0 {
		joined := many[0]
		for _, m := range many[1:] {
			joined += ", " + m
		}
		apiErr.Message = joined
	}

	return apiErr
}
