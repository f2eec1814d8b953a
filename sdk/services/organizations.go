// Package services implements one service group per Verto API resource.
//
// This file implements the OrganizationService which lists the organizations
// visible to the current identity and registers new ones. Organization codes
// are the canonical partition key used by every other resource.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

type OrganizationService struct {
	client ClientInterface
}

func NewOrganizationService(client ClientInterface) *OrganizationService {
	return &OrganizationService{
		client: client,
	}
}

// List retrieves all organizations visible to the current identity
func (s *OrganizationService) List(ctx context.Context) ([]models.OrganizationSummary, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/organizations", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var orgs []models.OrganizationSummary
	if err := json.NewDecoder(resp.Body).Decode(&orgs); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return orgs, nil
}

// Create registers a new organization and returns the server's summary
func (s *OrganizationService) Create(ctx context.Context, name, code string) (*models.OrganizationSummary, error) {
	body, err := json.Marshal(map[string]string{
		"name": name,
		"code": code,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := s.client.NewRequest(ctx, "POST", "/organizations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, newAPIError(resp)
	}

	var org models.OrganizationSummary
	if err := json.NewDecoder(resp.Body).Decode(&org); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &org, nil
}
