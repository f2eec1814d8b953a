// Package main provides the organization registration form for the Verto
// CLI. Creating an organization also provisions its release project
// server-side; the cached directory drops any stale entry with the same code.
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

type OrgFormModel struct {
	ws   *workspace.Workspace
	form *huh.Form
	lg   *lipgloss.Renderer

	submitting bool
	submitted  bool
	err        string
}

type organizationSavedMsg struct {
	err error
}

func NewOrgFormModel(ws *workspace.Workspace) OrgFormModel {
	m := OrgFormModel{
		ws: ws,
		lg: lipgloss.DefaultRenderer(),
	}

	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	name := ""
	code := ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Organization Name").
				Description("Display name, e.g. Acme Corp").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("code").
				Title("Organization Code").
				Description("Short identifier used as the release partition key, e.g. acme").
				Value(&code).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("code is required")
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

func (m OrgFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func saveOrganization(ws *workspace.Workspace, name, code string) tea.Cmd {
	return func() tea.Msg {
		_, err := ws.Directory.Add(context.Background(), name, code)
		return organizationSavedMsg{err: err}
	}
}

func (m OrgFormModel) Update(msg tea.Msg) (OrgFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case organizationSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateMsg{view: ViewOrganizations}
		}

	case tea.KeyMsg:
		if msg.String() == "esc" && !m.submitting {
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewOrganizations}
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
		cmds = append(cmds, saveOrganization(m.ws, m.form.GetString("name"), m.form.GetString("code")))
	}

	return m, tea.Batch(cmds...)
}

func (m OrgFormModel) View() string {
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
	body.WriteString(headerStyle.Render("Register Organization"))
	body.WriteString("\n\n")
	body.WriteString(m.form.View())

	if m.submitting {
		body.WriteString(statusStyle.Render("Creating organization..."))
		body.WriteString("\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	return body.String()
}
