// Package workspace keeps a client-side copy of the authenticated identity's
// releases, organizations, activity and transaction events synchronized with
// the Verto API, and derives the display projections the dashboard renders.
//
// This file implements the release view pipeline: flatten the nested
// releases map into rows, sort rows by client, filter them by a free-text
// term, and group them by client. The consuming order is flatten, sort,
// filter, group; sorting the full row set first guarantees that rows within
// a group appear in client-sorted order and that group order matches first
// occurrence after filtering.
package workspace

import (
	"sort"
	"strings"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// NormalizeKey canonicalizes a client code or environment name for use as a
// map key: trimmed and lower-cased.
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Flatten produces one ReleaseRow per (client, environment) pair with the
// derived id "{client}-{env}". Go maps carry no insertion order, so keys are
// walked in sorted order to keep the projection deterministic.
func Flatten(releases models.ReleasesData) []models.ReleaseRow {
	clients := make([]string, 0, len(releases))
	for client := range releases {
		clients = append(clients, client)
	}
	sort.Strings(clients)

	var rows []models.ReleaseRow
	for _, client := range clients {
		environments := releases[client]

		envs := make([]string, 0, len(environments))
		for env := range environments {
			envs = append(envs, env)
		}
		sort.Strings(envs)

		for _, env := range envs {
			rows = append(rows, models.ReleaseRow{
				ID:      client + "-" + env,
				Client:  client,
				Env:     env,
				Release: environments[env],
			})
		}
	}

	return rows
}

// SortByClient returns a new slice sorted by client code only. The sort is
// stable: rows with equal client codes keep their relative order.
func SortByClient(rows []models.ReleaseRow) []models.ReleaseRow {
	sorted := make([]models.ReleaseRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Client < sorted[j].Client
	})

	return sorted
}

// Filter keeps rows where the trimmed, case-insensitive term is a substring
// of the client code, environment, branch, version or commit message. A nil
// commit message never matches. An empty term is the identity.
func Filter(rows []models.ReleaseRow, rawTerm string) []models.ReleaseRow {
	term := strings.ToLower(strings.TrimSpace(rawTerm))
	if term == "" {
		return rows
	}

	var filtered []models.ReleaseRow
	for _, row := range rows {
		if rowMatches(row, term) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}

func rowMatches(row models.ReleaseRow, term string) bool {
	if strings.Contains(strings.ToLower(row.Client), term) ||
		strings.Contains(strings.ToLower(row.Env), term) ||
		strings.Contains(strings.ToLower(row.Branch), term) ||
		strings.Contains(strings.ToLower(row.Version), term) {
		return true
	}
	return row.CommitMessage != nil && strings.Contains(strings.ToLower(*row.CommitMessage), term)
}

// ClientGroup is one client's partition of the filtered row set.
type ClientGroup struct {
	Client string
	Rows   []models.ReleaseRow
}

// GroupByClient partitions rows by client code. Group order is the first
// occurrence of each client in the input; row order within a group is
// preserved.
func GroupByClient(rows []models.ReleaseRow) []ClientGroup {
	index := make(map[string]int)
	var groups []ClientGroup

	for _, row := range rows {
		i, ok := index[row.Client]
		if !ok {
			i = len(groups)
			index[row.Client] = i
			groups = append(groups, ClientGroup{Client: row.Client})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}
