// Package services implements one service group per Verto API resource.
//
// This file implements the ReleaseService which handles the release
// collection: fetching the full map, upserting a release for one
// client/environment pair, and deleting one. Every call returns the server's
// complete, authoritative ReleasesData map; callers replace their local copy
// wholesale rather than merging.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// ClientInterface is the subset of the SDK client the services depend on.
type ClientInterface interface {
	NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error)
	NewPublicRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error)
	Do(req *http.Request) (*http.Response, error)
}

type ReleaseService struct {
	client ClientInterface
}

func NewReleaseService(client ClientInterface) *ReleaseService {
	return &ReleaseService{
		client: client,
	}
}

// Fetch retrieves the full releases map for the current identity
func (s *ReleaseService) Fetch(ctx context.Context) (models.ReleasesData, error) {
	req, err := s.client.NewRequest(ctx, "GET", "/releases", nil)
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

	var data models.ReleasesData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return data, nil
}

// Upsert sends the full release payload for one client/environment pair and
// returns the server's resulting releases map.
func (s *ReleaseService) Upsert(ctx context.Context, client, environment string, release models.Release) (models.ReleasesData, error) {
	payload := models.ReleasePayload{
		Release:     release,
		Client:      client,
		Environment: environment,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := fmt.Sprintf("/releases/%s/%s", url.PathEscape(client), url.PathEscape(environment))
	req, err := s.client.NewRequest(ctx, "PUT", path, bytes.NewReader(body))
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

	var data models.ReleasesData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return data, nil
}

// Delete removes the release for one client/environment pair and returns the
// server's resulting releases map.
func (s *ReleaseService) Delete(ctx context.Context, client, environment string) (models.ReleasesData, error) {
	path := fmt.Sprintf("/releases/%s/%s", url.PathEscape(client), url.PathEscape(environment))
	req, err := s.client.NewRequest(ctx, "DELETE", path, nil)
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

	var data models.ReleasesData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return data, nil
}
