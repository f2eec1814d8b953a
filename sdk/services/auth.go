// Package services implements one service group per Verto API resource.
//
// This file implements the AuthService which establishes sessions: login,
// signup and invite-token redemption. These endpoints are the only
// uncredentialed part of the API surface; each returns a bearer token plus
// the authenticated user profile.
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

type AuthService struct {
	client ClientInterface
}

func NewAuthService(client ClientInterface) *AuthService {
	return &AuthService{
		client: client,
	}
}

// Login exchanges email/password credentials for a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return s.doAuth(ctx, "/auth/login", body)
}

// Signup creates a new account and establishes a session
func (s *AuthService) Signup(ctx context.Context, payload models.SignupPayload) (*models.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return s.doAuth(ctx, "/auth/signup", body)
}

// InviteDetails resolves an invite token to the invite it represents
func (s *AuthService) InviteDetails(ctx context.Context, token string) (*models.InviteDetails, error) {
	path := fmt.Sprintf("/auth/invitations/%s", url.PathEscape(token))
	req, err := s.client.NewPublicRequest(ctx, "GET", path, nil)
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

	var details models.InviteDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &details, nil
}

// AcceptInvite redeems an invite token. Password is required only for
// accounts that do not exist yet.
func (s *AuthService) AcceptInvite(ctx context.Context, token, password string) (*models.AuthResponse, error) {
	payload := map[string]string{"token": token}
	if password != "" {
		payload["password"] = password
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return s.doAuth(ctx, "/auth/invitations/accept", body)
}

func (s *AuthService) doAuth(ctx context.Context, path string, body []byte) (*models.AuthResponse, error) {
	req, err := s.client.NewPublicRequest(ctx, "POST", path, bytes.NewReader(body))
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

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &auth, nil
}
