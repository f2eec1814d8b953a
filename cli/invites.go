// Package main provides the pending invites view for the Verto CLI.
//
// This file implements the InvitesModel which lists the signed-in user's
// pending project collaboration invites and lets them accept or decline
// each one.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type InvitesModel struct {
	ws *workspace.Workspace

	loading bool
	cursor  int
	invites []models.PendingProjectInvite
	status  string
	err     string
	spinner spinner.Model
	lg      *lipgloss.Renderer
}

type invitesLoadedMsg struct {
	invites []models.PendingProjectInvite
	err     error
}

type inviteDecidedMsg struct {
	accepted bool
	err      error
}

func NewInvitesModel(ws *workspace.Workspace) InvitesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return InvitesModel{
		ws:      ws,
		loading: true,
		spinner: s,
		lg:      lipgloss.DefaultRenderer(),
	}
}

func (m InvitesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadInvites(m.ws))
}

func loadInvites(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		invites, err := ws.Client.Projects.PendingInvites(context.Background())
		return invitesLoadedMsg{invites: invites, err: err}
	}
}

func decideInvite(ws *workspace.Workspace, inviteID string, accept bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if accept {
			err = ws.Client.Projects.AcceptPendingInvite(ctx, inviteID)
		} else {
			err = ws.Client.Projects.RejectPendingInvite(ctx, inviteID)
		}
		return inviteDecidedMsg{accepted: accept, err: err}
	}
}

func (m InvitesModel) Update(msg tea.Msg) (InvitesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case invitesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.invites = msg.invites
		if m.cursor >= len(m.invites) {
			m.cursor = 0
		}
		return m, nil

	case inviteDecidedMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err.Error()
			return m, nil
		}
		if msg.accepted {
			m.status = "Invite accepted"
		} else {
			m.status = "Invite declined"
		}
		// Refetch; the decided invite is gone from the pending list.
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadInvites(m.ws))

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
				return NavigateMsg{view: ViewMainMenu}
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.invites)-1 {
				m.cursor++
			}
			return m, nil
		case "a", "enter":
			if len(m.invites) > 0 && m.cursor < len(m.invites) {
				m.loading = true
				m.status = ""
				return m, tea.Batch(m.spinner.Tick, decideInvite(m.ws, m.invites[m.cursor].ID, true))
			}
			return m, nil
		case "x":
			if len(m.invites) > 0 && m.cursor < len(m.invites) {
				m.loading = true
				m.status = ""
				return m, tea.Batch(m.spinner.Tick, decideInvite(m.ws, m.invites[m.cursor].ID, false))
			}
			return m, nil
		case "r":
			m.loading = true
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, loadInvites(m.ws))
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m InvitesModel) View() string {
	titleStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2)

	metaStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginLeft(2)

	rowStyle := m.lg.NewStyle().
		MarginLeft(2).
		MarginTop(1)

	selectedStyle := m.lg.NewStyle().
		MarginLeft(2).
		MarginTop(1).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	detailStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")).
		MarginLeft(4)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	statusStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("226")).
		MarginLeft(2).
		MarginTop(1)

	helpStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1).
		MarginLeft(2)

	var body strings.Builder
	body.WriteString(components.RenderHeader())
	body.WriteString(titleStyle.Render("Pending Invites"))
	body.WriteString("\n")

	if m.loading {
		body.WriteString(metaStyle.Render(m.spinner.View() + " Loading invites..."))
		body.WriteString("\n")
		return body.String()
	}

	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	if len(m.invites) == 0 && m.err == "" {
		body.WriteString(metaStyle.Render("No pending invites."))
		body.WriteString("\n")
	}

	for i, invite := range m.invites {
		line := fmt.Sprintf("%s (%s)", invite.Project.Name, invite.Project.Slug)
		if i == m.cursor {
			body.WriteString(selectedStyle.Render("> " + line))
		} else {
			body.WriteString(rowStyle.Render("  " + line))
		}
		body.WriteString("\n")
		body.WriteString(detailStyle.Render(fmt.Sprintf("invited by %s, expires %s", actorName(invite.InvitedBy), formatTimestamp(invite.ExpiresAt))))
		body.WriteString("\n")
	}

	if m.status != "" {
		body.WriteString(statusStyle.Render(m.status))
		body.WriteString("\n")
	}

	body.WriteString(helpStyle.Render("a: accept • x: decline • r: reload • esc: back"))
	body.WriteString("\n")

	return body.String()
}
