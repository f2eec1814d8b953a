// Package main provides snapshot export for the Verto CLI.
//
// This file writes the current release snapshot to CSV and JSON files named
// after the signed-in user and today's date.
package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"
)

// writeSnapshotFiles exports the cached releases into dir: the flattened
// rows as CSV and the raw releases map as JSON. Returns the written paths.
func writeSnapshotFiles(ws *workspace.Workspace, dir string) ([]string, error) {
	rows := ws.Store.ExportSnapshot()
	now := time.Now()

	csvPath := filepath.Join(dir, workspace.SnapshotFilename(sessionEmail(ws), now, "csv"))
	if err := writeCSV(csvPath, rows); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, workspace.SnapshotFilename(sessionEmail(ws), now, "json"))
	if err := writeJSON(jsonPath, ws.Store.Releases()); err != nil {
		return nil, err
	}

	logDebug("exported %d release rows to %s and %s", len(rows), csvPath, jsonPath)
	return []string{csvPath, jsonPath}, nil
}

func writeCSV(path string, rows []workspace.ExportRow) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(workspace.ExportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, releases models.ReleasesData) error {
	raw, err := json.MarshalIndent(releases, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
