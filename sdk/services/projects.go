// Package services implements one service group per Verto API resource.
//
// This file implements the ProjectService which covers the project-scoped
// surface: server-computed activity summaries (bulk and per-organization)
// and collaboration invites (sending, listing pending, accept/reject).
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

type ProjectService struct {
	client ClientInterface
}

func NewProjectService(client ClientInterface) *ProjectService {
	return &ProjectService{
		client: client,
	}
}

// ActivitySummaries retrieves the activity snapshot for every organization
func (s *ProjectService) ActivitySummaries(ctx context.Context) (models.ProjectActivityMap, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/projects/activity", nil)
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

	var activity models.ProjectActivityMap
	if err := json.NewDecoder(resp.Body).Decode(&activity); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return activity, nil
}

// ActivityDetail retrieves one organization's activity summary on demand
func (s *ProjectService) ActivityDetail(ctx context.Context, client string) (*models.ProjectActivitySummary, error) {
	path := fmt.Sprintf("/projects/%s/activity", url.PathEscape(client))
	req, err := s.client.NewRequest(ctx, "GET", path, nil)
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

	var summary models.ProjectActivitySummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &summary, nil
}

// Invite sends a collaboration invite for one organization's project
func (s *ProjectService) Invite(ctx context.Context, client, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	path := fmt.Sprintf("/projects/%s/invitations", url.PathEscape(client))
	req, err := s.client.NewRequest(ctx, "POST", path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return newAPIError(resp)
	}

	return nil
}

// PendingInvites lists invites awaiting a decision from the current identity
func (s *ProjectService) PendingInvites(ctx context.Context) ([]models.PendingProjectInvite, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/projects/invitations", nil)
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

	var invites []models.PendingProjectInvite
	if err := json.NewDecoder(resp.Body).Decode(&invites); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return invites, nil
}

// AcceptPendingInvite accepts one pending invite
func (s *ProjectService) AcceptPendingInvite(ctx context.Context, inviteID string) error {
	return s.decideInvite(ctx, inviteID, "accept")
}

// RejectPendingInvite rejects one pending invite
func (s *ProjectService) RejectPendingInvite(ctx context.Context, inviteID string) error {
	return s.decideInvite(ctx, inviteID, "reject")
}

func (s *ProjectService) decideInvite(ctx context.Context, inviteID, decision string) error {
	path := fmt.Sprintf("/projects/invitations/%s/%s", url.PathEscape(inviteID), decision)
	req, err := s.client.NewRequest(ctx, "POST", path, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}

	return nil
}
