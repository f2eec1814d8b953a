package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// decodeMetadata round-trips through encoding/json so the metadata carries
// the same dynamic types a decoded server payload would.
func decodeMetadata(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var metadata map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return metadata
}

func TestDescribeChangesRecordArray(t *testing.T) {
	metadata := decodeMetadata(t, `{
		"environment": "prod",
		"changes": [
			{"field": "version", "previous": "1.0.0", "current": "2.0.0"},
			{"field": "build", "previous": 41, "current": 42},
			{"field": "commitMessage", "previous": null, "current": "fix login"}
		]
	}`)

	lines := describeChanges(metadata)
	if len(lines) != 3 {
		t.Fatalf("expected 3 change lines, got %d: %v", len(lines), lines)
	}

	expected := []string{
		"Version: 1.0.0 → 2.0.0",
		"Build: 41 → 42",
		"Commit: — → fix login",
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestDescribeChangesSkipsMalformedRecords(t *testing.T) {
	metadata := decodeMetadata(t, `{
		"changes": [
			"not a record",
			{"previous": "a", "current": "b"},
			{"field": "branch", "previous": "main", "current": "release"}
		]
	}`)

	lines := describeChanges(metadata)
	if len(lines) != 1 {
		t.Fatalf("expected 1 change line, got %d: %v", len(lines), lines)
	}
	if lines[0] != "Branch: main → release" {
		t.Errorf("unexpected line: %q", lines[0])
	}
}

func TestDescribeChangesNonArrayMetadata(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"changes": {"version": {"from": "1", "to": "2"}}}`,
		`{"changes": null}`,
	} {
		if lines := describeChanges(decodeMetadata(t, raw)); lines != nil {
			t.Errorf("metadata %s: expected no lines, got %v", raw, lines)
		}
	}
}

func TestDescribeChangesBlankValuesRenderAsDash(t *testing.T) {
	metadata := decodeMetadata(t, `{
		"changes": [{"field": "date", "previous": "  ", "current": "2024-03-05"}]
	}`)

	lines := describeChanges(metadata)
	if len(lines) != 1 || lines[0] != "Date: — → 2024-03-05" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestMetadataChips(t *testing.T) {
	metadata := decodeMetadata(t, `{
		"environment": "prod",
		"branch": "main",
		"version": "2.0.0",
		"build": 42,
		"date": "2024-03-05",
		"commitMessage": "fix login",
		"isNewRelease": true
	}`)

	chips := metadataChips(metadata)
	want := "Env: prod • Branch: main • Version: 2.0.0 • Build: 42 • Date: 2024-03-05 • Commit: fix login"
	if chips != want {
		t.Errorf("expected %q, got %q", want, chips)
	}
}

func TestMetadataChipsTruncatesCommit(t *testing.T) {
	long := strings.Repeat("x", 120)
	metadata := map[string]interface{}{"commitMessage": long}

	chips := metadataChips(metadata)
	if !strings.HasPrefix(chips, "Commit: ") {
		t.Fatalf("unexpected chips: %q", chips)
	}
	if !strings.HasSuffix(chips, "…") {
		t.Errorf("expected truncated commit to end with ellipsis, got %q", chips)
	}
	if strings.Contains(chips, long) {
		t.Error("expected long commit message to be truncated")
	}
}

func TestMetadataChipsEmpty(t *testing.T) {
	if chips := metadataChips(map[string]interface{}{"isNewRelease": true}); chips != "" {
		t.Errorf("expected no chips, got %q", chips)
	}
}

func TestDescribeLogEntryVerbs(t *testing.T) {
	name := "Ada"
	user := &models.ActivityUser{DisplayName: &name}

	tests := []struct {
		name     string
		entry    models.ProjectActivityLogEntry
		expected string
	}{
		{
			name: "new release",
			entry: models.ProjectActivityLogEntry{
				Action:   models.ActionReleaseUpserted,
				User:     user,
				Metadata: map[string]interface{}{"environment": "prod", "isNewRelease": true},
			},
			expected: "Ada added the prod release",
		},
		{
			name: "updated release",
			entry: models.ProjectActivityLogEntry{
				Action:   models.ActionReleaseUpserted,
				User:     user,
				Metadata: map[string]interface{}{"environment": "uat", "isNewRelease": false},
			},
			expected: "Ada updated the uat release",
		},
		{
			name: "system delete",
			entry: models.ProjectActivityLogEntry{
				Action:   models.ActionReleaseDeleted,
				Metadata: map[string]interface{}{"environment": "prod"},
			},
			expected: "System deleted the prod release",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeLogEntry(tt.entry); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	got := formatTimestamp("2024-06-15T12:00:00Z")
	if got == "2024-06-15T12:00:00Z" {
		t.Errorf("expected a formatted timestamp, got the raw string %q", got)
	}
	if !strings.Contains(got, "2024") {
		t.Errorf("expected formatted timestamp to carry the year, got %q", got)
	}

	if got := formatTimestamp("not-a-date"); got != "not-a-date" {
		t.Errorf("expected unparseable input to pass through, got %q", got)
	}
}
