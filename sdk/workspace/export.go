// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file shapes the cached release collection into spreadsheet-style rows
// for export. Shaping is pure and local; writing the rows to disk is the
// CLI's job.
package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// ExportHeader is the column order of an exported snapshot.
var ExportHeader = []string{"Client", "Environment", "Branch", "Version", "Build", "Date", "Commit Message"}

// ExportRow is one spreadsheet-shaped release row. A nil commit message
// exports as an empty cell.
type ExportRow struct {
	Client        string
	Environment   string
	Branch        string
	Version       string
	Build         int
	Date          string
	CommitMessage string
}

// Values returns the row's cells in ExportHeader order.
func (r ExportRow) Values() []string {
	return []string{r.Client, r.Environment, r.Branch, r.Version, fmt.Sprintf("%d", r.Build), r.Date, r.CommitMessage}
}

// SnapshotRows flattens a releases map into client-sorted export rows.
func SnapshotRows(releases models.ReleasesData) []ExportRow {
	flattened := SortByClient(Flatten(releases))

	rows := make([]ExportRow, 0, len(flattened))
	for _, row := range flattened {
		commit := ""
		if row.CommitMessage != nil {
			commit = *row.CommitMessage
		}
		rows = append(rows, ExportRow{
			Client:        row.Client,
			Environment:   row.Env,
			Branch:        row.Branch,
			Version:       row.Version,
			Build:         row.Build,
			Date:          row.Date,
			CommitMessage: commit,
		})
	}

	return rows
}

// SnapshotFilename builds the export filename from the user's email and the
// current date: releases-<identifier>-<yyyy-mm-dd>.<ext>.
func SnapshotFilename(email string, now time.Time, ext string) string {
	identifier := strings.SplitN(email, "@", 2)[0]
	if identifier == "" {
		identifier = "verto-user"
	}
	return fmt.Sprintf("releases-%s-%s.%s", identifier, now.Format("2006-01-02"), ext)
}
