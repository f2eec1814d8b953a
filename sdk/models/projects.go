// Package models provides the wire types exchanged with the Verto API.
//
// This file defines project-scoped types: organization summaries, the
// server-computed activity audit trail, and pending collaboration invites.
package models

// Activity action kinds recorded by the server.
const (
	ActionProjectCreated  = "project_created"
	ActionReleaseUpserted = "release_upserted"
	ActionReleaseDeleted  = "release_deleted"
)

// OrganizationSummary identifies a client organization; Code is the canonical
// partition key for releases, activity and transaction events.
type OrganizationSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ActivityUser is the actor attached to a log entry. A nil actor means the
// change was system-originated.
type ActivityUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
}

// ProjectActivityLogEntry is one audit record. Metadata carries free-form
// detail such as the environment and field-level before/after changes.
type ProjectActivityLogEntry struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action"`
	CreatedAt string                 `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	User      *ActivityUser          `json:"user"`
}

// ProjectActivitySummary is the per-organization activity snapshot. Read-only
// and server-computed; the client never derives it locally.
type ProjectActivitySummary struct {
	ProjectID     string                    `json:"projectId"`
	Name          string                    `json:"name"`
	Slug          string                    `json:"slug"`
	LastUpdatedAt *string                   `json:"lastUpdatedAt"`
	LastUpdatedBy *ActivityUser             `json:"lastUpdatedBy"`
	RecentLogs    []ProjectActivityLogEntry `json:"recentLogs"`
}

// ProjectActivityMap maps client code to its activity summary.
type ProjectActivityMap map[string]ProjectActivitySummary

// InviteProject identifies the project a pending invite belongs to.
type InviteProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PendingProjectInvite is a collaboration invite awaiting a decision.
type PendingProjectInvite struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	ExpiresAt string        `json:"expiresAt"`
	Project   InviteProject `json:"project"`
	InvitedBy *ActivityUser `json:"invitedBy"`
}

// InviteDetails describes an invite token being redeemed during signup.
type InviteDetails struct {
	Email        string `json:"email"`
	ProjectName  string `json:"projectName"`
	Client       string `json:"client"`
	InviterEmail string `json:"inviterEmail"`
	ExpiresAt    string `json:"expiresAt"`
}
