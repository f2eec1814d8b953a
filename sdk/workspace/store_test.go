package workspace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"

	verto "github.com/muhammadjan5/verto-ux/sdk"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/services"
)

type fakeReleaseAPI struct {
	fetchData  models.ReleasesData
	fetchErr   error
	upsertData models.ReleasesData
	upsertErr  error
	deleteData models.ReleasesData
	deleteErr  error

	upsertCalls int
	deleteCalls int
	lastClient  string
	lastEnv     string
	lastRelease models.Release
}

func (f *fakeReleaseAPI) Fetch(ctx context.Context) (models.ReleasesData, error) {
	return f.fetchData, f.fetchErr
}

func (f *fakeReleaseAPI) Upsert(ctx context.Context, client, env string, release models.Release) (models.ReleasesData, error) {
	f.upsertCalls++
	f.lastClient, f.lastEnv, f.lastRelease = client, env, release
	return f.upsertData, f.upsertErr
}

func (f *fakeReleaseAPI) Delete(ctx context.Context, client, env string) (models.ReleasesData, error) {
	f.deleteCalls++
	f.lastClient, f.lastEnv = client, env
	return f.deleteData, f.deleteErr
}

type fakeProjectAPI struct {
	summaries   models.ProjectActivityMap
	summaryErr  error
	detail      *models.ProjectActivitySummary
	detailErr   error
	inviteErr   error
	inviteCalls int
	lastInvite  string
}

func (f *fakeProjectAPI) ActivitySummaries(ctx context.Context) (models.ProjectActivityMap, error) {
	return f.summaries, f.summaryErr
}

func (f *fakeProjectAPI) ActivityDetail(ctx context.Context, client string) (*models.ProjectActivitySummary, error) {
	return f.detail, f.detailErr
}

func (f *fakeProjectAPI) Invite(ctx context.Context, client, email string) error {
	f.inviteCalls++
	f.lastInvite = email
	return f.inviteErr
}

func TestStoreLoadReplacesBothCaches(t *testing.T) {
	serverData := models.ReleasesData{
		"acme": {"prod": {Branch: "main", Version: "2.0.0", Build: 4, Date: "2024-01-01"}},
	}
	serverActivity := models.ProjectActivityMap{
		"acme": {ProjectID: "p1", Name: "Acme", Slug: "acme"},
	}

	store := NewStore(
		&fakeReleaseAPI{fetchData: serverData},
		&fakeProjectAPI{summaries: serverActivity},
	)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Releases(); !reflect.DeepEqual(got, serverData) {
		t.Errorf("releases cache = %+v, want %+v", got, serverData)
	}
	if got := store.Activity(); !reflect.DeepEqual(got, serverActivity) {
		t.Errorf("activity cache = %+v, want %+v", got, serverActivity)
	}
}

func TestStoreLoadFailureClearsBothCaches(t *testing.T) {
	releases := &fakeReleaseAPI{
		fetchData:  models.ReleasesData{"acme": {"prod": {Branch: "main", Version: "1.0.0", Build: 1, Date: "2024-01-01"}}},
		upsertData: models.ReleasesData{},
	}
	projects := &fakeProjectAPI{summaries: models.ProjectActivityMap{"acme": {ProjectID: "p1"}}}
	store := NewStore(releases, projects)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	// One half failing discards both caches, never a partial pair.
	projects.summaryErr = errors.New("activity fetch failed")
	err := store.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	if got := store.Releases(); len(got) != 0 {
		t.Errorf("expected releases cache cleared, got %+v", got)
	}
	if got := store.Activity(); len(got) != 0 {
		t.Errorf("expected activity cache cleared, got %+v", got)
	}
}

func TestStoreUpsertReplacesCacheWithServerResponse(t *testing.T) {
	// The server response includes entries the client never wrote locally;
	// the cache must match it exactly.
	serverData := models.ReleasesData{
		"acme":   {"prod": {Branch: "main", Version: "2.0.0", Build: 4, Date: "2024-01-01"}},
		"globex": {"uat": {Branch: "develop", Version: "0.9.0", Build: 2, Date: "2024-02-01"}},
	}
	releases := &fakeReleaseAPI{upsertData: serverData}
	store := NewStore(releases, &fakeProjectAPI{summaries: models.ProjectActivityMap{}})

	err := store.Upsert(context.Background(), "  Acme ", "PROD", models.Release{
		Branch: " main ", Version: " 2.0.0 ", Build: 4, Date: " 2024-01-01 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if releases.lastClient != "acme" || releases.lastEnv != "prod" {
		t.Errorf("expected normalized keys acme/prod, got %s/%s", releases.lastClient, releases.lastEnv)
	}
	if releases.lastRelease.Branch != "main" || releases.lastRelease.Version != "2.0.0" {
		t.Errorf("expected trimmed release fields, got %+v", releases.lastRelease)
	}
	if got := store.Releases(); !reflect.DeepEqual(got, serverData) {
		t.Errorf("cache = %+v, want server response %+v", got, serverData)
	}
}

func TestStoreUpsertDefaultsBuildToOne(t *testing.T) {
	releases := &fakeReleaseAPI{upsertData: models.ReleasesData{}}
	store := NewStore(releases, &fakeProjectAPI{summaries: models.ProjectActivityMap{}})

	err := store.Upsert(context.Background(), "acme", "prod", models.Release{
		Branch: "main", Version: "1.0.0", Build: 0, Date: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.lastRelease.Build != 1 {
		t.Errorf("expected build 1, got %d", releases.lastRelease.Build)
	}
}

func TestStoreUpsertValidation(t *testing.T) {
	releases := &fakeReleaseAPI{}
	store := NewStore(releases, &fakeProjectAPI{})

	tests := []struct {
		name    string
		client  string
		env     string
		release models.Release
		field   string
	}{
		{"missing client", "  ", "prod", models.Release{Branch: "main", Version: "1.0.0", Date: "2024-01-01"}, "client"},
		{"missing env", "acme", "", models.Release{Branch: "main", Version: "1.0.0", Date: "2024-01-01"}, "environment"},
		{"missing branch", "acme", "prod", models.Release{Version: "1.0.0", Date: "2024-01-01"}, "branch"},
		{"missing version", "acme", "prod", models.Release{Branch: "main", Date: "2024-01-01"}, "version"},
		{"missing date", "acme", "prod", models.Release{Branch: "main", Version: "1.0.0"}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Upsert(context.Background(), tt.client, tt.env, tt.release)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}

	if releases.upsertCalls != 0 {
		t.Errorf("expected no API calls for invalid input, got %d", releases.upsertCalls)
	}
}

func TestStoreUpsertFailureLeavesCacheUntouched(t *testing.T) {
	seed := models.ReleasesData{
		"acme": {"prod": {Branch: "main", Version: "1.0.0", Build: 1, Date: "2024-01-01"}},
	}
	releases := &fakeReleaseAPI{fetchData: seed}
	store := NewStore(releases, &fakeProjectAPI{summaries: models.ProjectActivityMap{}})

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	releases.upsertErr = errors.New("server rejected")
	err := store.Upsert(context.Background(), "acme", "prod", models.Release{
		Branch: "main", Version: "2.0.0", Date: "2024-02-01",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if got := store.Releases(); !reflect.DeepEqual(got, seed) {
		t.Errorf("expected cache unchanged, got %+v", got)
	}
}

func TestStoreRemoveRefreshesActivity(t *testing.T) {
	releases := &fakeReleaseAPI{deleteData: models.ReleasesData{}}
	projects := &fakeProjectAPI{summaries: models.ProjectActivityMap{
		"acme": {ProjectID: "p1", Name: "Acme"},
	}}
	store := NewStore(releases, projects)

	if err := store.Remove(context.Background(), "Acme", "prod"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if releases.lastClient != "acme" {
		t.Errorf("expected normalized client acme, got %s", releases.lastClient)
	}
	if got := store.Activity(); len(got) != 1 {
		t.Errorf("expected refreshed activity cache, got %+v", got)
	}
}

func TestStoreInviteUserRequiresEmail(t *testing.T) {
	projects := &fakeProjectAPI{}
	store := NewStore(&fakeReleaseAPI{}, projects)

	err := store.InviteUser(context.Background(), "acme", "  ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if projects.inviteCalls != 0 {
		t.Error("expected no API call for blank email")
	}

	if err := store.InviteUser(context.Background(), "acme", " dev@acme.io "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projects.lastInvite != "dev@acme.io" {
		t.Errorf("expected trimmed email, got %q", projects.lastInvite)
	}
}

func TestStoreClear(t *testing.T) {
	releases := &fakeReleaseAPI{
		fetchData: models.ReleasesData{"acme": {"prod": {Branch: "main", Version: "1.0.0", Build: 1, Date: "2024-01-01"}}},
	}
	store := NewStore(releases, &fakeProjectAPI{summaries: models.ProjectActivityMap{"acme": {ProjectID: "p1"}}})

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}
	store.Clear()

	if got := store.Releases(); len(got) != 0 {
		t.Errorf("expected empty releases after clear, got %+v", got)
	}
	if got := store.Activity(); len(got) != 0 {
		t.Errorf("expected empty activity after clear, got %+v", got)
	}
}

func TestStoreReleasesReturnsCopy(t *testing.T) {
	releases := &fakeReleaseAPI{
		fetchData: models.ReleasesData{"acme": {"prod": {Branch: "main", Version: "1.0.0", Build: 1, Date: "2024-01-01"}}},
	}
	store := NewStore(releases, &fakeProjectAPI{summaries: models.ProjectActivityMap{}})

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	snapshot := store.Releases()
	snapshot["acme"]["prod"] = models.Release{Branch: "tampered"}

	if store.Releases()["acme"]["prod"].Branch != "main" {
		t.Error("expected snapshot mutation not to reach the cache")
	}
}

// Mutating without a credential must fail before any request leaves the
// process.
func TestStoreMutationWithoutCredentialMakesNoRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := verto.NewClient(verto.StaticToken(""), verto.WithBaseURL(server.URL))
	store := NewStore(services.NewReleaseService(client), services.NewProjectService(client))

	err := store.Upsert(context.Background(), "acme", "prod", models.Release{
		Branch: "main", Version: "1.0.0", Date: "2024-01-01",
	})
	if !errors.Is(err, verto.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}

	if err := store.Load(context.Background()); !errors.Is(err, verto.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired from load, got %v", err)
	}

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("expected zero requests, server saw %d", n)
	}
}
