// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file implements the Registry, the cached transaction event map. Every
// mutation's response is the complete grouped map and replaces the cache
// wholesale, like the release collection.
package workspace

import (
	"context"
	"strings"
	"sync"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// TransactionEventAPI is the transaction event surface the registry depends
// on. Implemented by services.TransactionEventService.
type TransactionEventAPI interface {
	List(ctx context.Context) (models.TransactionEventsByClient, error)
	Create(ctx context.Context, input models.TransactionEventInput) (models.TransactionEventsByClient, error)
	Update(ctx context.Context, eventID string, input models.TransactionEventInput) (models.TransactionEventsByClient, error)
}

// Registry caches transaction events grouped by client. Safe for concurrent
// use.
type Registry struct {
	api TransactionEventAPI

	mu     sync.Mutex
	events models.TransactionEventsByClient
}

// NewRegistry creates a Registry over the given API surface.
func NewRegistry(api TransactionEventAPI) *Registry {
	return &Registry{
		api:    api,
		events: models.TransactionEventsByClient{},
	}
}

// Load fetches all events and replaces the cache. On failure the cache is
// cleared and the error returned.
func (r *Registry) Load(ctx context.Context) error {
	events, err := r.api.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.events = models.TransactionEventsByClient{}
		return err
	}

	r.events = orEmptyEvents(events)
	return nil
}

// Add registers a new event; the server's full grouped map replaces the
// cache.
func (r *Registry) Add(ctx context.Context, client, code, desc string) error {
	input, err := normalizeEventInput(client, code, desc)
	if err != nil {
		return err
	}

	events, apiErr := r.api.Create(ctx, input)
	if apiErr != nil {
		return apiErr
	}

	r.mu.Lock()
	r.events = orEmptyEvents(events)
	r.mu.Unlock()
	return nil
}

// Update rewrites one event; the server's full grouped map replaces the
// cache.
func (r *Registry) Update(ctx context.Context, eventID string, client, code, desc string) error {
	input, err := normalizeEventInput(client, code, desc)
	if err != nil {
		return err
	}

	events, apiErr := r.api.Update(ctx, eventID, input)
	if apiErr != nil {
		return apiErr
	}

	r.mu.Lock()
	r.events = orEmptyEvents(events)
	r.mu.Unlock()
	return nil
}

// Events returns a snapshot of the cached map. Event slices are shared with
// the cache and must be treated as read-only.
func (r *Registry) Events() models.TransactionEventsByClient {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(models.TransactionEventsByClient, len(r.events))
	for client, events := range r.events {
		out[client] = events
	}
	return out
}

// Clear empties the cache.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = models.TransactionEventsByClient{}
}

func normalizeEventInput(client, code, desc string) (models.TransactionEventInput, error) {
	input := models.TransactionEventInput{
		Client:       NormalizeKey(client),
		PetEventCode: strings.TrimSpace(code),
		PetEventDesc: strings.TrimSpace(desc),
	}
	if input.Client == "" {
		return input, &ValidationError{Field: "client", Message: "client is required"}
	}
	if input.PetEventCode == "" {
		return input, &ValidationError{Field: "petEventCode", Message: "event code is required"}
	}
	return input, nil
}

func orEmptyEvents(events models.TransactionEventsByClient) models.TransactionEventsByClient {
	if events == nil {
		return models.TransactionEventsByClient{}
	}
	return events
}
