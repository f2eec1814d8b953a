// Package main provides the release form view for the Verto CLI.
//
// This file implements the ReleaseFormModel, a huh-based form used for both
// recording a new release and editing an existing one. Submitting sends the
// release upstream and swaps the local cache for the server's response.
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
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var formAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}

type ReleaseFormModel struct {
	ws      *workspace.Workspace
	form    *huh.Form
	lg      *lipgloss.Renderer
	spinner spinner.Model

	editing    bool
	submitting bool
	submitted  bool
	err        string
}

type releaseSavedMsg struct {
	err error
}

func NewReleaseFormModel(ws *workspace.Workspace, clientCode, env string, release *models.Release) ReleaseFormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ReleaseFormModel{
		ws:      ws,
		lg:      lipgloss.DefaultRenderer(),
		spinner: s,
		editing: release != nil,
	}

	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	client := clientCode
	environment := env
	branch := ""
	version := ""
	build := "1"
	date := ""
	commit := ""
	if release != nil {
		branch = release.Branch
		version = release.Version
		build = strconv.Itoa(release.Build)
		date = release.Date
		if release.CommitMessage != nil {
			commit = *release.CommitMessage
		}
	}

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("client").
				Title("Client").
				Description("Organization code, e.g. acme").
				Value(&client).
				Validate(required("client")),

			huh.NewInput().
				Key("environment").
				Title("Environment").
				Description("Deployment environment, e.g. prod, uat").
				Value(&environment).
				Validate(required("environment")),

			huh.NewInput().
				Key("branch").
				Title("Branch").
				Value(&branch).
				Validate(required("branch")),

			huh.NewInput().
				Key("version").
				Title("Version").
				Value(&version).
				Validate(required("version")),

			huh.NewInput().
				Key("build").
				Title("Build Number").
				Description("Defaults to 1 when blank or invalid").
				Value(&build).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("must be a number")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Release Date").
				Description("e.g. 2024-01-15").
				Value(&date).
				Validate(required("date")),

			huh.NewInput().
				Key("commit").
				Title("Commit Message").
				Description("Optional").
				Value(&commit),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(theme)

	return m
}

func (m ReleaseFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func saveRelease(ws *workspace.Workspace, clientCode, env string, release models.Release) tea.Cmd {
	return func() tea.Msg {
		err := ws.Store.Upsert(context.Background(), clientCode, env, release)
		return releaseSavedMsg{err: err}
	}
}

func (m ReleaseFormModel) Update(msg tea.Msg) (ReleaseFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case releaseSavedMsg:
		m.submitting = false
		if msg.err != nil {
			// Keep submitted set so the completed form does not re-fire;
			// esc returns to the dashboard.
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateMsg{view: ViewDashboard}
		}

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

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

		build, err := strconv.Atoi(m.form.GetString("build"))
		if err != nil {
			build = 1
		}

		release := models.Release{
			Branch:  m.form.GetString("branch"),
			Version: m.form.GetString("version"),
			Build:   build,
			Date:    m.form.GetString("date"),
		}
		if commit := strings.TrimSpace(m.form.GetString("commit")); commit != "" {
			release.CommitMessage = &commit
		}

		cmds = append(cmds, m.spinner.Tick, saveRelease(m.ws, m.form.GetString("client"), m.form.GetString("environment"), release))
	}

	return m, tea.Batch(cmds...)
}

func (m ReleaseFormModel) View() string {
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

	title := "Record Release"
	if m.editing {
		title = "Edit Release"
	}

	var body strings.Builder
	body.WriteString(components.RenderHeader())
	body.WriteString("\n")
	body.WriteString(headerStyle.Render(title))
	body.WriteString("\n\n")
	body.WriteString(m.form.View())

	if m.submitting {
		body.WriteString(statusStyle.Render(m.spinner.View() + " Saving release..."))
		body.WriteString("\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	return body.String()
}
