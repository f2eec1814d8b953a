// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file implements the Directory, the cached organization list. Adding
// an organization deduplicates by code against the previous list and keeps
// the cache sorted by name case-insensitively.
package workspace

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// OrganizationAPI is the organization surface the directory depends on.
// Implemented by services.OrganizationService.
type OrganizationAPI interface {
	List(ctx context.Context) ([]models.OrganizationSummary, error)
	Create(ctx context.Context, name, code string) (*models.OrganizationSummary, error)
}

// Directory caches the organization list for the current identity. Safe for
// concurrent use.
type Directory struct {
	api OrganizationAPI

	mu   sync.Mutex
	orgs []models.OrganizationSummary
}

// NewDirectory creates a Directory over the given API surface.
func NewDirectory(api OrganizationAPI) *Directory {
	return &Directory{api: api}
}

// Load fetches the organization list and replaces the cache sorted by name.
// On failure the cache is cleared and the error returned.
func (d *Directory) Load(ctx context.Context) error {
	orgs, err := d.api.List(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.orgs = nil
		return err
	}

	d.orgs = sortOrganizations(orgs)
	return nil
}

// Add registers a new organization. On success the cache drops any previous
// entry with the same code, inserts the created one, and re-sorts by name.
func (d *Directory) Add(ctx context.Context, name, code string) (*models.OrganizationSummary, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if code == "" {
		return nil, &ValidationError{Field: "code", Message: "code is required"}
	}

	created, err := d.api.Create(ctx, name, code)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	next := make([]models.OrganizationSummary, 0, len(d.orgs)+1)
	for _, org := range d.orgs {
		if org.Code != created.Code {
			next = append(next, org)
		}
	}
	next = append(next, *created)
	d.orgs = sortOrganizations(next)

	return created, nil
}

// Organizations returns a copy of the cached list.
func (d *Directory) Organizations() []models.OrganizationSummary {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.OrganizationSummary, len(d.orgs))
	copy(out, d.orgs)
	return out
}

// Clear empties the cache.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orgs = nil
}

func sortOrganizations(orgs []models.OrganizationSummary) []models.OrganizationSummary {
	sorted := make([]models.OrganizationSummary, len(orgs))
	copy(sorted, orgs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	return sorted
}
