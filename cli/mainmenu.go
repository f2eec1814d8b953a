// Package main provides the main menu view for the Verto CLI.
//
// This file implements the MainMenuModel which displays the primary
// navigation menu with entries for the release dashboard, organizations,
// transaction events, pending invites, settings, export and logout.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MainMenuModel struct {
	ws      *workspace.Workspace
	choices list.Model
	status  string
}

type menuItem struct {
	title       string
	description string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.title }

func NewMainMenuModel(ws *workspace.Workspace) MainMenuModel {
	items := []list.Item{
		menuItem{title: "Releases", description: "Browse and manage releases across client environments"},
		menuItem{title: "Organizations", description: "View and register client organizations"},
		menuItem{title: "Transaction Events", description: "Manage PET event codes per client"},
		menuItem{title: "Pending Invites", description: "Accept or decline project collaboration invites"},
		menuItem{title: "Settings", description: "Edit your profile and change your password"},
		menuItem{title: "Export", description: "Write the current releases to CSV and JSON files"},
		menuItem{title: "Logout", description: "Sign out and clear the saved session"},
		menuItem{title: "Quit", description: "Exit the CLI"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 21)
	l.Title = "Main Menu"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return MainMenuModel{
		ws:      ws,
		choices: l,
	}
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) Update(msg tea.Msg) (MainMenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.choices.SetSize(msg.Width, 21)
		return m, nil
	case snapshotExportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Exported " + strings.Join(msg.files, ", ")
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			selectedItem := m.choices.SelectedItem()
			if selectedItem != nil {
				item := selectedItem.(menuItem)
				switch item.title {
				case "Releases":
					return m, func() tea.Msg {
						return NavigateMsg{view: ViewDashboard}
					}
				case "Organizations":
					return m, func() tea.Msg {
						return NavigateMsg{view: ViewOrganizations}
					}
				case "Transaction Events":
					return m, func() tea.Msg {
						return NavigateMsg{view: ViewTransactions}
					}
				case "Pending Invites":
					return m, func() tea.Msg {
						return NavigateMsg{view: ViewInvites}
					}
				case "Settings":
					return m, func() tea.Msg {
						return NavigateMsg{view: ViewSettings}
					}
				case "Export":
					ws := m.ws
					return m, func() tea.Msg {
						if err := ws.Store.Load(context.Background()); err != nil {
							return snapshotExportedMsg{err: err}
						}
						files, err := writeSnapshotFiles(ws, ".")
						return snapshotExportedMsg{files: files, err: err}
					}
				case "Logout":
					ws := m.ws
					return m, func() tea.Msg {
						ws.Reset()
						return signedOutMsg{}
					}
				case "Quit":
					return m, tea.Quit
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

func (m MainMenuModel) View() string {
	header := components.RenderHeader()

	if user := m.ws.Session.User(); user != nil {
		userStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)
		header += userStyle.Render(fmt.Sprintf("Signed in as %s", user.Email)) + "\n"
	}

	out := header + "\n" + m.choices.View()
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)
		out += "\n" + statusStyle.Render(m.status)
	}
	return out
}
