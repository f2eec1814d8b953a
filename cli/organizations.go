// Package main provides the organizations view for the Verto CLI.
//
// This file implements the OrganizationsModel which lists the registered
// client organizations sorted by name and links to the registration form.
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

type OrganizationsModel struct {
	ws *workspace.Workspace

	loading bool
	orgs    []models.OrganizationSummary
	err     string
	spinner spinner.Model
	lg      *lipgloss.Renderer
}

type organizationsLoadedMsg struct {
	err error
}

func NewOrganizationsModel(ws *workspace.Workspace) OrganizationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return OrganizationsModel{
		ws:      ws,
		loading: true,
		spinner: s,
		lg:      lipgloss.DefaultRenderer(),
	}
}

func (m OrganizationsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadOrganizations(m.ws))
}

func loadOrganizations(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		err := ws.Directory.Load(context.Background())
		return organizationsLoadedMsg{err: err}
	}
}

func (m OrganizationsModel) Update(msg tea.Msg) (OrganizationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case organizationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.orgs = m.ws.Directory.Organizations()
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
				return NavigateMsg{view: ViewMainMenu}
			}
		case "n":
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewOrgForm}
			}
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadOrganizations(m.ws))
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m OrganizationsModel) View() string {
	titleStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2)

	metaStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginLeft(2)

	rowStyle := m.lg.NewStyle().
		MarginLeft(2)

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
	body.WriteString(titleStyle.Render("Organizations"))
	body.WriteString("\n\n")

	if m.loading {
		body.WriteString(metaStyle.Render(m.spinner.View() + " Loading organizations..."))
		body.WriteString("\n")
		return body.String()
	}

	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	if len(m.orgs) == 0 && m.err == "" {
		body.WriteString(metaStyle.Render("No organizations yet. Press 'n' to register one."))
		body.WriteString("\n")
	}

	for _, org := range m.orgs {
		body.WriteString(rowStyle.Render(fmt.Sprintf("%-30s %s", org.Name, org.Code)))
		body.WriteString("\n")
	}

	body.WriteString(helpStyle.Render("n: new organization • r: reload • esc: back"))
	body.WriteString("\n")

	return body.String()
}
