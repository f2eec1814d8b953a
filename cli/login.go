// Package main provides the sign-in view for the Verto CLI.
//
// This file implements the LoginModel which handles email/password login,
// account creation, and invite-token redemption. The three modes share one
// screen; ctrl+s toggles signup and ctrl+t switches to invite redemption.
package main

import (
	"context"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeSignup
	modeInvite
)

type LoginModel struct {
	ws         *workspace.Workspace
	mode       loginMode
	inputs     []textinput.Model
	focusIndex int
	submitting bool
	err        string
	lg         *lipgloss.Renderer
}

type authResultMsg struct {
	err error
}

func NewLoginModel(ws *workspace.Workspace) LoginModel {
	m := LoginModel{
		ws:   ws,
		mode: modeLogin,
		lg:   lipgloss.DefaultRenderer(),
	}
	m.rebuildInputs()
	return m
}

func (m *LoginModel) rebuildInputs() {
	var inputs []textinput.Model

	newInput := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		in.Width = 50
		if secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		return in
	}

	switch m.mode {
	case modeLogin:
		inputs = []textinput.Model{
			newInput("you@example.com", false),
			newInput("password", true),
		}
	case modeSignup:
		inputs = []textinput.Model{
			newInput("you@example.com", false),
			newInput("password", true),
			newInput("first name", false),
			newInput("last name", false),
		}
	case modeInvite:
		inputs = []textinput.Model{
			newInput("invite token", false),
			newInput("password (leave blank for existing accounts)", true),
		}
	}

	inputs[0].Focus()
	m.inputs = inputs
	m.focusIndex = 0
	m.err = ""
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) submit() tea.Cmd {
	ws := m.ws
	mode := m.mode

	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}

	return func() tea.Msg {
		ctx := context.Background()

		var err error
		switch mode {
		case modeLogin:
			err = ws.Account.Login(ctx, values[0], values[1])
		case modeSignup:
			err = ws.Account.Signup(ctx, models.SignupPayload{
				Email:     values[0],
				Password:  values[1],
				FirstName: values[2],
				LastName:  values[3],
			})
		case modeInvite:
			err = ws.Account.AcceptInvite(ctx, values[0], values[1])
		}
		return authResultMsg{err: err}
	}
}

func (m LoginModel) validate() string {
	first := strings.TrimSpace(m.inputs[0].Value())
	switch m.mode {
	case modeLogin, modeSignup:
		if first == "" {
			return "Email is required"
		}
		if strings.TrimSpace(m.inputs[1].Value()) == "" {
			return "Password is required"
		}
	case modeInvite:
		if first == "" {
			return "Invite token is required"
		}
	}
	return ""
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return signedInMsg{} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			if m.mode == modeSignup {
				m.mode = modeLogin
			} else {
				m.mode = modeSignup
			}
			m.rebuildInputs()
			return m, textinput.Blink
		case "ctrl+t":
			if m.mode == modeInvite {
				m.mode = modeLogin
			} else {
				m.mode = modeInvite
			}
			m.rebuildInputs()
			return m, textinput.Blink
		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter on last field = submit
			if s == "enter" && m.focusIndex == len(m.inputs)-1 {
				if errMsg := m.validate(); errMsg != "" {
					m.err = errMsg
					return m, nil
				}
				m.submitting = true
				m.err = ""
				return m, m.submit()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs)-1 {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i < len(m.inputs); i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, tea.Batch(cmds...)
		default:
			m.err = ""
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m LoginModel) View() string {
	headerStyle := m.lg.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}).
		Bold(true).
		Padding(0, 1, 0, 2)

	labelStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("205")).
		MarginLeft(2).
		MarginTop(1)

	inputStyle := m.lg.NewStyle().
		MarginLeft(2)

	helpStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(2).
		MarginLeft(2)

	errorStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("196")).
		MarginLeft(2).
		MarginTop(1)

	statusStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("226")).
		MarginLeft(2).
		MarginTop(1)

	var title string
	var labels []string
	switch m.mode {
	case modeLogin:
		title = "Sign In"
		labels = []string{"Email:", "Password:"}
	case modeSignup:
		title = "Create Account"
		labels = []string{"Email:", "Password:", "First Name:", "Last Name:"}
	case modeInvite:
		title = "Redeem Invite"
		labels = []string{"Invite Token:", "Password:"}
	}

	var body strings.Builder
	body.WriteString("\n")

	for i, input := range m.inputs {
		body.WriteString(labelStyle.Render(labels[i]))
		body.WriteString("\n")
		body.WriteString(inputStyle.Render(input.View()))
		body.WriteString("\n")
	}

	if m.err != "" {
		body.WriteString("\n")
		body.WriteString(errorStyle.Render("⚠ " + m.err))
	}
	if m.submitting {
		body.WriteString("\n")
		body.WriteString(statusStyle.Render("Signing in..."))
	}

	body.WriteString("\n")
	body.WriteString(helpStyle.Render("enter: submit • ctrl+s: signup • ctrl+t: invite token • ctrl+c: quit"))

	return components.RenderHeader() + "\n" + headerStyle.Render(title) + "\n" + body.String()
}
