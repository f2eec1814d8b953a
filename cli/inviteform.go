// Package main provides the collaborator invite form for the Verto CLI.
// Invites are scoped to one organization's project; the invited address
// receives a token redeemable at sign-in.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type InviteFormModel struct {
	ws     *workspace.Workspace
	form   *huh.Form
	lg     *lipgloss.Renderer
	client string

	submitting bool
	submitted  bool
	err        string
}

type inviteSentMsg struct {
	err error
}

func NewInviteFormModel(ws *workspace.Workspace, client string) InviteFormModel {
	m := InviteFormModel{
		ws:     ws,
		client: client,
		lg:     lipgloss.DefaultRenderer(),
	}

	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	email := ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Description(fmt.Sprintf("Invite a collaborator to the %s project", client)).
				Value(&email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(theme)

	return m
}

func (m InviteFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func sendInvite(ws *workspace.Workspace, client, email string) tea.Cmd {
	return func() tea.Msg {
		err := ws.Store.InviteUser(context.Background(), client, email)
		return inviteSentMsg{err: err}
	}
}

func (m InviteFormModel) Update(msg tea.Msg) (InviteFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case inviteSentMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateMsg{view: ViewDashboard}
		}

	case tea.KeyMsg:
		if msg.String() == "esc" && !m.submitting {
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewDashboard}
			}
		}
	}

	var cmds []tea.Cmd

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
		cmds = append(cmds, cmd)
	}

	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true
		m.submitting = true
		cmds = append(cmds, sendInvite(m.ws, m.client, m.form.GetString("email")))
	}

	return m, tea.Batch(cmds...)
}

func (m InviteFormModel) View() string {
	headerStyle := m.lg.NewStyle().
		Foreground(formAccent).
		Bold(true).
		Padding(0, 1, 0, 2)

	statusStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("226")).
		MarginLeft(2).
		MarginTop(1)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	var body strings.Builder
	body.WriteString(components.RenderHeader())
	body.WriteString("\n")
	body.WriteString(headerStyle.Render("Invite Collaborator"))
	body.WriteString("\n\n")
	body.WriteString(m.form.View())

	if m.submitting {
		body.WriteString(statusStyle.Render("Sending invite..."))
		body.WriteString("\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	return body.String()
}
