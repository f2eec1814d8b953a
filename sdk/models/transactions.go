// Package models provides the wire types exchanged with the Verto API.
//
// This file defines transaction event registries: named code/description
// pairs registered against a project, grouped by client code.
package models

// TransactionEvent is one registered code/description pair.
type TransactionEvent struct {
	ID           string `json:"id"`
	Client       string `json:"client"`
	ProjectID    string `json:"projectId"`
	ProjectName  string `json:"projectName"`
	PetEventCode string `json:"petEventCode"`
	PetEventDesc string `json:"petEventDesc"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// TransactionEventsByClient groups events by client code.
type TransactionEventsByClient map[string][]TransactionEvent

// TransactionEventInput is the body for creating or updating an event.
type TransactionEventInput struct {
	Client       string `json:"client"`
	PetEventCode string `json:"petEventCode"`
	PetEventDesc string `json:"petEventDesc"`
}
