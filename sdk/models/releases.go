// Package models provides the wire types exchanged with the Verto API.
//
// This file defines release metadata: what code is deployed to one
// client/environment pair at a point in time, the nested authoritative
// collection keyed by client then environment, and the flattened row
// projection used for display.
package models

// Release describes a deployment for one client/environment pair.
type Release struct {
	Branch        string  `json:"branch"`
	Version       string  `json:"version"`
	Build         int     `json:"build"`
	Date          string  `json:"date"`
	CommitMessage *string `json:"commitMessage"`
}

// ClientReleases maps environment name to release.
type ClientReleases map[string]Release

// ReleasesData maps client code to its environments. Key uniqueness enforces
// the no-duplicate (client, environment) invariant.
type ReleasesData map[string]ClientReleases

// ReleaseRow is a Release flattened with its owning client and environment.
// Display-only; never the persisted form.
type ReleaseRow struct {
	ID     string `json:"id"`
	Client string `json:"client"`
	Env    string `json:"env"`
	Release
}

// ReleasePayload is the body sent when upserting a release.
type ReleasePayload struct {
	Release
	Client      string `json:"client"`
	Environment string `json:"environment"`
}
