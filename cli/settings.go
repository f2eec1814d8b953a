// Package main provides the account settings view for the Verto CLI.
//
// This file implements the SettingsModel: the profile summary screen plus
// huh forms for editing profile fields and changing the password. Saved
// changes refresh the persisted session so the next run shows them without
// a refetch.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsViewing settingsMode = iota
	settingsEditingProfile
	settingsChangingPassword
)

type SettingsModel struct {
	ws   *workspace.Workspace
	mode settingsMode
	form *huh.Form
	lg   *lipgloss.Renderer

	submitting bool
	submitted  bool
	status     string
	err        string
}

type profileSavedMsg struct {
	err error
}

type passwordChangedMsg struct {
	err error
}

func NewSettingsModel(ws *workspace.Workspace) SettingsModel {
	return SettingsModel{
		ws:   ws,
		mode: settingsViewing,
		lg:   lipgloss.DefaultRenderer(),
	}
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional maps a form value to an update-payload field: nil when blank so
// the server leaves the field untouched.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (m *SettingsModel) buildProfileForm() {
	user := m.ws.Session.User()
	if user == nil {
		user = &models.UserProfile{}
	}

	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	displayName := deref(user.DisplayName)
	firstName := deref(user.FirstName)
	lastName := deref(user.LastName)
	jobTitle := deref(user.JobTitle)
	location := deref(user.Location)
	phone := deref(user.PhoneNumber)
	bio := deref(user.Bio)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("displayName").Title("Display Name").Value(&displayName),
			huh.NewInput().Key("firstName").Title("First Name").Value(&firstName),
			huh.NewInput().Key("lastName").Title("Last Name").Value(&lastName),
			huh.NewInput().Key("jobTitle").Title("Job Title").Value(&jobTitle),
			huh.NewInput().Key("location").Title("Location").Value(&location),
			huh.NewInput().Key("phone").Title("Phone Number").Value(&phone),
			huh.NewInput().Key("bio").Title("Bio").Value(&bio),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(theme)
}

func (m *SettingsModel) buildPasswordForm() {
	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	current := ""
	next := ""
	confirm := ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("current").
				Title("Current Password").
				EchoMode(huh.EchoModePassword).
				Value(&current).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("current password is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("new").
				Title("New Password").
				EchoMode(huh.EchoModePassword).
				Value(&next).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("must be at least 8 characters")
					}
					return nil
				}),

			huh.NewInput().
				Key("confirm").
				Title("Confirm New Password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(theme)
}

func saveProfile(ws *workspace.Workspace, payload models.UpdateProfilePayload) tea.Cmd {
	return func() tea.Msg {
		_, err := ws.Account.UpdateProfile(context.Background(), payload)
		return profileSavedMsg{err: err}
	}
}

func changePassword(ws *workspace.Workspace, payload models.UpdatePasswordPayload) tea.Cmd {
	return func() tea.Msg {
		_, err := ws.Account.UpdatePassword(context.Background(), payload)
		return passwordChangedMsg{err: err}
	}
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.submitting = false
		m.mode = settingsViewing
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.status = "Profile saved"
		return m, nil

	case passwordChangedMsg:
		m.submitting = false
		m.mode = settingsViewing
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.status = "Password changed"
		return m, nil

	case tea.KeyMsg:
		if m.mode == settingsViewing {
			switch msg.String() {
			case "q", "esc":
				return m, func() tea.Msg {
					return NavigateMsg{view: ViewMainMenu}
				}
			case "e":
				m.mode = settingsEditingProfile
				m.submitted = false
				m.status = ""
				m.err = ""
				m.buildProfileForm()
				return m, m.form.Init()
			case "p":
				m.mode = settingsChangingPassword
				m.submitted = false
				m.status = ""
				m.err = ""
				m.buildPasswordForm()
				return m, m.form.Init()
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		if msg.String() == "esc" && !m.submitting {
			m.mode = settingsViewing
			return m, nil
		}
	}

	if m.mode == settingsViewing || m.form == nil {
		return m, nil
	}

	var cmds []tea.Cmd

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
		cmds = append(cmds, cmd)
	}

	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true

		switch m.mode {
		case settingsEditingProfile:
			m.submitting = true
			payload := models.UpdateProfilePayload{
				DisplayName: optional(m.form.GetString("displayName")),
				FirstName:   optional(m.form.GetString("firstName")),
				LastName:    optional(m.form.GetString("lastName")),
				JobTitle:    optional(m.form.GetString("jobTitle")),
				Location:    optional(m.form.GetString("location")),
				PhoneNumber: optional(m.form.GetString("phone")),
				Bio:         optional(m.form.GetString("bio")),
			}
			cmds = append(cmds, saveProfile(m.ws, payload))

		case settingsChangingPassword:
			if m.form.GetString("new") != m.form.GetString("confirm") {
				m.err = "Passwords do not match"
				m.mode = settingsViewing
				return m, nil
			}
			m.submitting = true
			cmds = append(cmds, changePassword(m.ws, models.UpdatePasswordPayload{
				CurrentPassword: m.form.GetString("current"),
				NewPassword:     m.form.GetString("new"),
			}))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m SettingsModel) View() string {
	titleStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2)

	labelStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		Width(14).
		MarginLeft(2)

	valueStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA"))

	notSetStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true)

	statusStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("226")).
		MarginLeft(2).
		MarginTop(1)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	helpStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(2).
		MarginLeft(2)

	var body strings.Builder
	body.WriteString(components.RenderHeader())

	if m.mode != settingsViewing && m.form != nil {
		title := "Edit Profile"
		if m.mode == settingsChangingPassword {
			title = "Change Password"
		}
		body.WriteString(titleStyle.Render(title))
		body.WriteString("\n\n")
		body.WriteString(m.form.View())
		if m.submitting {
			body.WriteString(statusStyle.Render("Saving..."))
			body.WriteString("\n")
		}
		return body.String()
	}

	body.WriteString(titleStyle.Render("Settings"))
	body.WriteString("\n\n")

	user := m.ws.Session.User()
	if user == nil {
		body.WriteString(notSetStyle.Render("  Not signed in"))
		body.WriteString("\n")
	} else {
		renderField := func(label string, value *string) {
			body.WriteString(labelStyle.Render(label))
			body.WriteString(" ")
			if value == nil || *value == "" {
				body.WriteString(notSetStyle.Render("Not set"))
			} else {
				body.WriteString(valueStyle.Render(*value))
			}
			body.WriteString("\n")
		}

		body.WriteString(labelStyle.Render("Email:"))
		body.WriteString(" ")
		body.WriteString(valueStyle.Render(user.Email))
		body.WriteString("\n")
		renderField("Display Name:", user.DisplayName)
		renderField("First Name:", user.FirstName)
		renderField("Last Name:", user.LastName)
		renderField("Job Title:", user.JobTitle)
		renderField("Location:", user.Location)
		renderField("Phone:", user.PhoneNumber)
		renderField("Bio:", user.Bio)
	}

	if m.status != "" {
		body.WriteString(statusStyle.Render(m.status))
		body.WriteString("\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	body.WriteString(helpStyle.Render("e: edit profile • p: change password • esc: back"))
	body.WriteString("\n")

	return body.String()
}
