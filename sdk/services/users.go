// Package services implements one service group per Verto API resource.
//
// This file implements the UserService for the current user's profile:
// fetching it, updating profile fields, and changing the password.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

type UserService struct {
	client ClientInterface
}

func NewUserService(client ClientInterface) *UserService {
	return &UserService{
		client: client,
	}
}

// Me retrieves the current user's profile
func (s *UserService) Me(ctx context.Context) (*models.UserProfile, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/users/me", nil)
	if err != nil {
		return nil, err
	}

	return s.doProfile(req)
}

// UpdateProfile patches the current user's profile fields
func (s *UserService) UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.UserProfile, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := s.client.NewRequest(ctx, "PATCH", "/users/me", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return s.doProfile(req)
}

// UpdatePassword changes the current user's password
func (s *UserService) UpdatePassword(ctx context.Context, payload models.UpdatePasswordPayload) (*models.UserProfile, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := s.client.NewRequest(ctx, "PATCH", "/users/me/password", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return s.doProfile(req)
}

func (s *UserService) doProfile(req *http.Request) (*models.UserProfile, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &profile, nil
}
