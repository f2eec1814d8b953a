// Package services implements one service group per Verto API resource.
//
// This file implements the TransactionEventService which manages the
// transaction event code registries. Every mutation returns the complete
// grouped map, mirroring the releases discipline.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

type TransactionEventService struct {
	client ClientInterface
}

func NewTransactionEventService(client ClientInterface) *TransactionEventService {
	return &TransactionEventService{
		client: client,
	}
}

// List retrieves all transaction events grouped by client
func (s *TransactionEventService) List(ctx context.Context) (models.TransactionEventsByClient, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/transaction-events", nil)
	if err != nil {
		return nil, err
	}

	return s.doGrouped(req)
}

// Create registers a new transaction event and returns the full grouped map
func (s *TransactionEventService) Create(ctx context.Context, input models.TransactionEventInput) (models.TransactionEventsByClient, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := s.client.NewRequest(ctx, "POST", "/transaction-events", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return s.doGrouped(req)
}

// Update rewrites one transaction event and returns the full grouped map
func (s *TransactionEventService) Update(ctx context.Context, eventID string, input models.TransactionEventInput) (models.TransactionEventsByClient, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := fmt.Sprintf("/transaction-events/%s", url.PathEscape(eventID))
	req, err := s.client.NewRequest(ctx, "PUT", path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return s.doGrouped(req)
}

func (s *TransactionEventService) doGrouped(req *http.Request) (models.TransactionEventsByClient, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, newAPIError(resp)
	}

	var events models.TransactionEventsByClient
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return events, nil
}
