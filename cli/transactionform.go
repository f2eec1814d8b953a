// Package main provides the transaction event form for the Verto CLI. The
// same huh form serves creating a new PET event code and editing an existing
// one.
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

type TransactionFormModel struct {
	ws      *workspace.Workspace
	form    *huh.Form
	lg      *lipgloss.Renderer
	eventID string

	submitting bool
	submitted  bool
	err        string
}

type transactionSavedMsg struct {
	err error
}

func NewTransactionFormModel(ws *workspace.Workspace, event *models.TransactionEvent) TransactionFormModel {
	m := TransactionFormModel{
		ws: ws,
		lg: lipgloss.DefaultRenderer(),
	}

	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(formAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(formAccent)

	client := ""
	code := ""
	desc := ""
	if event != nil {
		m.eventID = event.ID
		client = event.Client
		code = event.PetEventCode
		desc = event.PetEventDesc
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
				Key("code").
				Title("Event Code").
				Description("PET event code, e.g. PAY-01").
				Value(&code).
				Validate(required("event code")),

			huh.NewInput().
				Key("desc").
				Title("Description").
				Description("Optional").
				Value(&desc),
		),
	).
		WithWidth(60).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(theme)

	return m
}

func (m TransactionFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func saveTransactionEvent(ws *workspace.Workspace, eventID, client, code, desc string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if eventID == "" {
			err = ws.Registry.Add(ctx, client, code, desc)
		} else {
			err = ws.Registry.Update(ctx, eventID, client, code, desc)
		}
		return transactionSavedMsg{err: err}
	}
}

func (m TransactionFormModel) Update(msg tea.Msg) (TransactionFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateMsg{view: ViewTransactions}
		}

	case tea.KeyMsg:
		if msg.String() == "esc" && !m.submitting {
			return m, func() tea.Msg {
				return NavigateMsg{view: ViewTransactions}
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
		cmds = append(cmds, saveTransactionEvent(m.ws, m.eventID,
			m.form.GetString("client"), m.form.GetString("code"), m.form.GetString("desc")))
	}

	return m, tea.Batch(cmds...)
}

func (m TransactionFormModel) View() string {
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

	title := "New Transaction Event"
	if m.eventID != "" {
		title = "Edit Transaction Event"
	}

	var body strings.Builder
	body.WriteString(components.RenderHeader())
	body.WriteString("\n")
	body.WriteString(headerStyle.Render(title))
	body.WriteString("\n\n")
	body.WriteString(m.form.View())

	if m.submitting {
		body.WriteString(statusStyle.Render("Saving event..."))
		body.WriteString("\n")
	}
	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	return body.String()
}
