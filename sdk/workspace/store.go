// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file implements the Store holding the authoritative release and
// activity caches. The synchronization contract is replace-on-success: every
// mutation sends the change to the server and swaps the whole cached
// collection for the server's authoritative response. There is no local
// merge, so the client never diverges from the last-known server state for
// more than one in-flight request. Racing mutations are last-write-wins;
// there is no request queue.
package workspace

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// ReleaseAPI is the release surface the store depends on. Implemented by
// services.ReleaseService.
type ReleaseAPI interface {
	Fetch(ctx context.Context) (models.ReleasesData, error)
	Upsert(ctx context.Context, client, environment string, release models.Release) (models.ReleasesData, error)
	Delete(ctx context.Context, client, environment string) (models.ReleasesData, error)
}

// ProjectAPI is the project surface the store depends on. Implemented by
// services.ProjectService.
type ProjectAPI interface {
	ActivitySummaries(ctx context.Context) (models.ProjectActivityMap, error)
	ActivityDetail(ctx context.Context, client string) (*models.ProjectActivitySummary, error)
	Invite(ctx context.Context, client, email string) error
}

// ValidationError reports a rejected mutation argument before any network
// attempt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Store caches the releases and activity collections for the current
// identity. Safe for concurrent use.
type Store struct {
	releases ReleaseAPI
	projects ProjectAPI

	mu       sync.Mutex
	data     models.ReleasesData
	activity models.ProjectActivityMap
}

// NewStore creates a Store over the given API surfaces.
func NewStore(releases ReleaseAPI, projects ProjectAPI) *Store {
	return &Store{
		releases: releases,
		projects: projects,
		data:     models.ReleasesData{},
		activity: models.ProjectActivityMap{},
	}
}

// Load fetches the full releases and activity maps concurrently and replaces
// both caches as one paired update, so views never observe releases without
// matching activity. Any failure clears both caches and is returned.
func (s *Store) Load(ctx context.Context) error {
	var (
		wg          sync.WaitGroup
		data        models.ReleasesData
		activity    models.ProjectActivityMap
		dataErr     error
		activityErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		data, dataErr = s.releases.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		activity, activityErr = s.projects.ActivitySummaries(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if dataErr != nil || activityErr != nil {
		s.data = models.ReleasesData{}
		s.activity = models.ProjectActivityMap{}
		if dataErr != nil {
			return dataErr
		}
		return activityErr
	}

	s.data = orEmptyReleases(data)
	s.activity = orEmptyActivity(activity)
	return nil
}

// Upsert sends the release for one client/environment pair and replaces the
// cache with the server's full response, then refreshes the activity
// summaries. Keys are normalized; build defaults to 1 when not a positive
// integer. On failure the previous cache is left untouched.
func (s *Store) Upsert(ctx context.Context, client, env string, release models.Release) error {
	client = NormalizeKey(client)
	env = NormalizeKey(env)
	if client == "" {
		return &ValidationError{Field: "client", Message: "client is required"}
	}
	if env == "" {
		return &ValidationError{Field: "environment", Message: "environment is required"}
	}

	release.Branch = strings.TrimSpace(release.Branch)
	release.Version = strings.TrimSpace(release.Version)
	release.Date = strings.TrimSpace(release.Date)
	if release.Branch == "" {
		return &ValidationError{Field: "branch", Message: "branch is required"}
	}
	if release.Version == "" {
		return &ValidationError{Field: "version", Message: "version is required"}
	}
	if release.Date == "" {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if release.Build < 1 {
		release.Build = 1
	}

	data, err := s.releases.Upsert(ctx, client, env, release)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = orEmptyReleases(data)
	s.mu.Unlock()

	return s.RefreshActivity(ctx)
}

// Remove deletes the release for one client/environment pair and replaces
// the cache with the server's full response, then refreshes the activity
// summaries. Confirmation of the destructive action is the caller's job.
func (s *Store) Remove(ctx context.Context, client, env string) error {
	client = NormalizeKey(client)
	env = NormalizeKey(env)
	if client == "" {
		return &ValidationError{Field: "client", Message: "client is required"}
	}
	if env == "" {
		return &ValidationError{Field: "environment", Message: "environment is required"}
	}

	data, err := s.releases.Delete(ctx, client, env)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = orEmptyReleases(data)
	s.mu.Unlock()

	return s.RefreshActivity(ctx)
}

// RefreshActivity refetches the activity summary map and replaces the cache.
func (s *Store) RefreshActivity(ctx context.Context) error {
	activity, err := s.projects.ActivitySummaries(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.activity = orEmptyActivity(activity)
	s.mu.Unlock()
	return nil
}

// ActivityDetail fetches one organization's activity summary on demand,
// independent of the cached map.
func (s *Store) ActivityDetail(ctx context.Context, client string) (*models.ProjectActivitySummary, error) {
	return s.projects.ActivityDetail(ctx, NormalizeKey(client))
}

// InviteUser sends a collaboration invite for one organization's project.
func (s *Store) InviteUser(ctx context.Context, client, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	return s.projects.Invite(ctx, NormalizeKey(client), email)
}

// Releases returns a copy of the cached releases map.
func (s *Store) Releases() models.ReleasesData {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(models.ReleasesData, len(s.data))
	for client, environments := range s.data {
		envs := make(models.ClientReleases, len(environments))
		for env, release := range environments {
			envs[env] = release
		}
		out[client] = envs
	}
	return out
}

// Activity returns a snapshot of the cached activity map. Entries are shared
// with the cache and must be treated as read-only.
func (s *Store) Activity() models.ProjectActivityMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(models.ProjectActivityMap, len(s.activity))
	for client, summary := range s.activity {
		out[client] = summary
	}
	return out
}

// ExportSnapshot shapes the cached releases into spreadsheet rows. Pure and
// local; no network call.
func (s *Store) ExportSnapshot() []ExportRow {
	return SnapshotRows(s.Releases())
}

// Clear empties both caches. Called on logout and credential switches; there
// is no cross-session cache reuse.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = models.ReleasesData{}
	s.activity = models.ProjectActivityMap{}
}

func orEmptyReleases(data models.ReleasesData) models.ReleasesData {
	if data == nil {
		return models.ReleasesData{}
	}
	return data
}

func orEmptyActivity(activity models.ProjectActivityMap) models.ProjectActivityMap {
	if activity == nil {
		return models.ProjectActivityMap{}
	}
	return activity
}
