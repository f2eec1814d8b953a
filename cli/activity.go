// Package main provides the activity trail view for the Verto CLI.
//
// This file implements the ActivityModel which fetches and renders one
// organization's audit trail: who changed what, when, with field-level
// before/after detail pulled from each log entry's metadata.
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ActivityModel struct {
	ws     *workspace.Workspace
	client string

	loading bool
	summary *models.ProjectActivitySummary
	err     string
	spinner spinner.Model
	lg      *lipgloss.Renderer
}

type activityLoadedMsg struct {
	summary *models.ProjectActivitySummary
	err     error
}

func NewActivityModel(ws *workspace.Workspace, client string) ActivityModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ActivityModel{
		ws:      ws,
		client:  client,
		loading: true,
		spinner: s,
		lg:      lipgloss.DefaultRenderer(),
	}
}

func (m ActivityModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadActivity(m.ws, m.client))
}

func loadActivity(ws *workspace.Workspace, client string) tea.Cmd {
	return func() tea.Msg {
		summary, err := ws.Store.ActivityDetail(context.Background(), client)
		return activityLoadedMsg{summary: summary, err: err}
	}
}

func (m ActivityModel) Update(msg tea.Msg) (ActivityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewDashboard}
			}
		case "r":
			m.loading = true
			m.err = ""
			return m, tea.Batch(m.spinner.Tick, loadActivity(m.ws, m.client))
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ActivityModel) View() string {
	titleStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2)

	metaStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginLeft(2)

	entryStyle := m.lg.NewStyle().
		MarginLeft(2).
		MarginTop(1)

	detailStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")).
		MarginLeft(4)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	helpStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1).
		MarginLeft(2)

	var body strings.Builder
	body.WriteString(components.RenderHeader())
	body.WriteString(titleStyle.Render(fmt.Sprintf("Activity — %s", strings.ToUpper(m.client))))
	body.WriteString("\n")

	if m.loading {
		body.WriteString(metaStyle.Render(m.spinner.View() + " Loading activity..."))
		body.WriteString("\n")
		return body.String()
	}

	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
		body.WriteString(helpStyle.Render("r: retry • esc: back"))
		return body.String()
	}

	if m.summary == nil || len(m.summary.RecentLogs) == 0 {
		body.WriteString(metaStyle.Render("No recorded activity for this organization."))
		body.WriteString("\n")
		body.WriteString(helpStyle.Render("esc: back"))
		return body.String()
	}

	body.WriteString(metaStyle.Render(describeLastUpdate(*m.summary)))
	body.WriteString("\n")

	for _, entry := range m.summary.RecentLogs {
		body.WriteString(entryStyle.Render(fmt.Sprintf("%s  %s", formatTimestamp(entry.CreatedAt), describeLogEntry(entry))))
		body.WriteString("\n")
		if chips := metadataChips(entry.Metadata); chips != "" {
			body.WriteString(detailStyle.Render(chips))
			body.WriteString("\n")
		}
		for _, line := range describeChanges(entry.Metadata) {
			body.WriteString(detailStyle.Render(line))
			body.WriteString("\n")
		}
	}

	body.WriteString(helpStyle.Render("r: reload • esc: back"))
	body.WriteString("\n")

	return body.String()
}

// describeLogEntry renders the one-line headline for an audit record.
func describeLogEntry(entry models.ProjectActivityLogEntry) string {
	who := actorName(entry.User)
	env := metadataString(entry.Metadata, "environment")

	switch entry.Action {
	case models.ActionProjectCreated:
		return fmt.Sprintf("%s created the project", who)
	case models.ActionReleaseUpserted:
		verb := "updated"
		if isNew, ok := entry.Metadata["isNewRelease"].(bool); ok && isNew {
			verb = "added"
		}
		if env != "" {
			return fmt.Sprintf("%s %s the %s release", who, verb, env)
		}
		return fmt.Sprintf("%s %s a release", who, verb)
	case models.ActionReleaseDeleted:
		if env != "" {
			return fmt.Sprintf("%s deleted the %s release", who, env)
		}
		return fmt.Sprintf("%s deleted a release", who)
	default:
		return fmt.Sprintf("%s performed %s", who, entry.Action)
	}
}

var changeFieldLabels = map[string]string{
	"environment":   "Environment",
	"branch":        "Branch",
	"version":       "Version",
	"build":         "Build",
	"date":          "Date",
	"commitMessage": "Commit",
}

// describeChanges renders field-level before/after lines from a log entry's
// metadata. The server stores "changes" as an array of
// {field, previous, current} records, in the order the fields changed.
func describeChanges(metadata map[string]interface{}) []string {
	raw, ok := metadata["changes"].([]interface{})
	if !ok {
		return nil
	}

	var lines []string
	for _, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		field, ok := record["field"].(string)
		if !ok {
			continue
		}
		label := changeFieldLabels[field]
		if label == "" {
			label = field
		}
		lines = append(lines, fmt.Sprintf("%s: %s → %s",
			label, formatChangeValue(record["previous"]), formatChangeValue(record["current"])))
	}
	return lines
}

// metadataChips renders the release metadata attached to an audit record as
// a "Label: value" chip line, the commit message truncated.
func metadataChips(metadata map[string]interface{}) string {
	fields := []struct{ key, label string }{
		{"environment", "Env"},
		{"branch", "Branch"},
		{"version", "Version"},
		{"build", "Build"},
		{"date", "Date"},
		{"commitMessage", "Commit"},
	}

	var chips []string
	for _, f := range fields {
		var text string
		switch value := metadata[f.key].(type) {
		case string:
			text = value
			if f.key == "commitMessage" {
				text = truncateValue(value, 90)
			}
		case float64:
			text = strconv.FormatFloat(value, 'f', -1, 64)
		case int:
			text = strconv.Itoa(value)
		default:
			continue
		}
		chips = append(chips, fmt.Sprintf("%s: %s", f.label, text))
	}
	return strings.Join(chips, " • ")
}

func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// formatChangeValue renders one side of a change record; absent and blank
// values render as a dash, long strings are truncated.
func formatChangeValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "—"
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "—"
		}
		return truncateValue(trimmed, 90)
	default:
		return "—"
	}
}

func truncateValue(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
