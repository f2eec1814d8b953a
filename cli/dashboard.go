// Package main provides the release dashboard view for the Verto CLI.
//
// This file implements the DashboardModel: the grouped, searchable table of
// releases per client environment, with shortcuts for creating, editing and
// deleting releases, inspecting an organization's activity trail, inviting
// collaborators and exporting the visible snapshot.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DashboardModel struct {
	ws *workspace.Workspace

	loading    bool
	searching  bool
	confirming bool
	search     textinput.Model
	spinner    spinner.Model
	cursor     int
	rows       []models.ReleaseRow
	groups     []workspace.ClientGroup
	status     string
	err        string
	lg         *lipgloss.Renderer
}

type releasesLoadedMsg struct {
	err error
}

type releaseMutatedMsg struct {
	err error
}

type snapshotExportedMsg struct {
	files []string
	err   error
}

func NewDashboardModel(ws *workspace.Workspace) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "client, environment, branch, version or commit"
	search.CharLimit = 100
	search.Width = 50

	return DashboardModel{
		ws:      ws,
		loading: true,
		search:  search,
		spinner: s,
		lg:      lipgloss.DefaultRenderer(),
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadReleases(m.ws))
}

func loadReleases(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		err := ws.Store.Load(context.Background())
		return releasesLoadedMsg{err: err}
	}
}

func deleteRelease(ws *workspace.Workspace, client, env string) tea.Cmd {
	return func() tea.Msg {
		err := ws.Store.Remove(context.Background(), client, env)
		return releaseMutatedMsg{err: err}
	}
}

func exportSnapshot(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		files, err := writeSnapshotFiles(ws, ".")
		return snapshotExportedMsg{files: files, err: err}
	}
}

// refresh rebuilds the derived view from the cache and the current search
// term, clamping the cursor to the filtered row count.
func (m *DashboardModel) refresh() {
	flat := workspace.SortByClient(workspace.Flatten(m.ws.Store.Releases()))
	m.rows = workspace.Filter(flat, m.search.Value())
	m.groups = workspace.GroupByClient(m.rows)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m DashboardModel) selected() *models.ReleaseRow {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return nil
	}
	row := m.rows[m.cursor]
	return &row
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case releasesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.refresh()
		return m, nil

	case releaseMutatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.status = "Release deleted"
		m.refresh()
		return m, nil

	case snapshotExportedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.status = "Exported " + strings.Join(msg.files, ", ")
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		k := msg.String()

		if m.confirming {
			switch k {
			case "y", "Y":
				m.confirming = false
				if row := m.selected(); row != nil {
					m.loading = true
					return m, tea.Batch(m.spinner.Tick, deleteRelease(m.ws, row.Client, row.Env))
				}
				return m, nil
			default:
				m.confirming = false
				m.status = ""
				return m, nil
			}
		}

		if m.searching {
			switch k {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				m.refresh()
				return m, cmd
			}
		}

		switch k {
		case "q", "esc":
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewMainMenu}
			}
		case "/":
			m.searching = true
			m.status = ""
			return m, m.search.Focus()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		case "r":
			m.loading = true
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, loadReleases(m.ws))
		case "n":
			return m, func() tea.Msg {
				return navigateToReleaseFormMsg{}
			}
		case "e":
			if row := m.selected(); row != nil {
				release := row.Release
				return m, func() tea.Msg {
					return navigateToReleaseFormMsg{
						clientCode: row.Client,
						env:        row.Env,
						release:    &release,
					}
				}
			}
			return m, nil
		case "d":
			if row := m.selected(); row != nil {
				m.confirming = true
				m.status = fmt.Sprintf("Delete release %s/%s? (y/n)", row.Client, row.Env)
			}
			return m, nil
		case "a":
			if row := m.selected(); row != nil {
				client := row.Client
				return m, func() tea.Msg {
					return navigateToActivityMsg{client: client}
				}
			}
			return m, nil
		case "i":
			if row := m.selected(); row != nil {
				client := row.Client
				return m, func() tea.Msg {
					return navigateToInviteFormMsg{client: client}
				}
			}
			return m, nil
		case "x":
			m.status = "Exporting..."
			return m, exportSnapshot(m.ws)
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	clientStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2).
		MarginTop(1)

	metaStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginLeft(2)

	rowStyle := m.lg.NewStyle().
		MarginLeft(4)

	selectedStyle := m.lg.NewStyle().
		MarginLeft(4).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	helpStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1).
		MarginLeft(2)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	statusStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("226")).
		MarginLeft(2).
		MarginTop(1)

	var body strings.Builder
	body.WriteString(components.RenderHeader())

	if m.searching || m.search.Value() != "" {
		body.WriteString(metaStyle.Render("Search: " + m.search.View()))
		body.WriteString("\n")
	}

	if m.loading {
		body.WriteString(metaStyle.Render(m.spinner.View() + " Loading releases..."))
		body.WriteString("\n")
		return body.String()
	}

	if len(m.rows) == 0 {
		if m.search.Value() != "" {
			body.WriteString(metaStyle.Render("No releases match the current search."))
		} else {
			body.WriteString(metaStyle.Render("No releases yet. Press 'n' to record one."))
		}
		body.WriteString("\n")
	}

	activity := m.ws.Store.Activity()

	index := 0
	for _, group := range m.groups {
		body.WriteString(clientStyle.Render(strings.ToUpper(group.Client)))
		body.WriteString("\n")

		if summary, ok := activity[group.Client]; ok {
			body.WriteString(metaStyle.Render(describeLastUpdate(summary)))
			body.WriteString("\n")
		}

		for _, row := range group.Rows {
			line := formatReleaseRow(row)
			if index == m.cursor {
				body.WriteString(selectedStyle.Render("> " + line))
			} else {
				body.WriteString(rowStyle.Render("  " + line))
			}
			body.WriteString("\n")
			index++
		}
	}

	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}
	if m.status != "" {
		body.WriteString(statusStyle.Render(m.status))
		body.WriteString("\n")
	}

	body.WriteString(helpStyle.Render("/: search • n: new • e: edit • d: delete • a: activity • i: invite • x: export • r: reload • esc: back"))
	body.WriteString("\n")

	return body.String()
}

func formatReleaseRow(row models.ReleaseRow) string {
	commit := ""
	if row.CommitMessage != nil && *row.CommitMessage != "" {
		commit = " — " + *row.CommitMessage
	}
	return fmt.Sprintf("%-10s %s @ %s (build %d, %s)%s",
		row.Env, row.Version, row.Branch, row.Build, row.Date, commit)
}

// describeLastUpdate renders the server-computed freshness line for a client
// group.
func describeLastUpdate(summary models.ProjectActivitySummary) string {
	if summary.LastUpdatedAt == nil {
		return "No recorded activity"
	}
	return fmt.Sprintf("Last updated %s by %s", formatTimestamp(*summary.LastUpdatedAt), actorName(summary.LastUpdatedBy))
}

// formatTimestamp renders an ISO timestamp in a compact local form, falling
// back to the raw string when it does not parse.
func formatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// actorName renders a log actor; a nil actor is a system-originated change.
func actorName(user *models.ActivityUser) string {
	if user == nil {
		return "System"
	}
	if user.DisplayName != nil && *user.DisplayName != "" {
		return *user.DisplayName
	}
	var parts []string
	if user.FirstName != nil && *user.FirstName != "" {
		parts = append(parts, *user.FirstName)
	}
	if user.LastName != nil && *user.LastName != "" {
		parts = append(parts, *user.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return user.Email
}
