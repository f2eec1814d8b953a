// Package main provides the transaction events view for the Verto CLI.
//
// This file implements the TransactionsModel which lists PET event codes
// grouped by client and links to the event form for creating and editing.
package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TransactionsModel struct {
	ws *workspace.Workspace

	loading bool
	cursor  int
	flat    []models.TransactionEvent
	err     string
	spinner spinner.Model
	lg      *lipgloss.Renderer
}

type transactionsLoadedMsg struct {
	err error
}

func NewTransactionsModel(ws *workspace.Workspace) TransactionsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return TransactionsModel{
		ws:      ws,
		loading: true,
		spinner: s,
		lg:      lipgloss.DefaultRenderer(),
	}
}

func (m TransactionsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTransactions(m.ws))
}

func loadTransactions(ws *workspace.Workspace) tea.Cmd {
	return func() tea.Msg {
		err := ws.Registry.Load(context.Background())
		return transactionsLoadedMsg{err: err}
	}
}

// refresh flattens the grouped cache into a stable display order: clients
// sorted, events in server order within each client.
func (m *TransactionsModel) refresh() {
	events := m.ws.Registry.Events()

	clients := make([]string, 0, len(events))
	for client := range events {
		clients = append(clients, client)
	}
	sort.Strings(clients)

	m.flat = m.flat[:0]
	for _, client := range clients {
		m.flat = append(m.flat, events[client]...)
	}

	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m TransactionsModel) Update(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.refresh()
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
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
			return m, nil
		case "n":
			return m, func() tea.Msg {
				return navigateToTransactionFormMsg{}
			}
		case "e":
			if len(m.flat) > 0 && m.cursor < len(m.flat) {
				event := m.flat[m.cursor]
				return m, func() tea.Msg {
					return navigateToTransactionFormMsg{event: &event}
				}
			}
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadTransactions(m.ws))
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TransactionsModel) View() string {
	titleStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("#7D56F4")).
		Bold(true).
		MarginLeft(2)

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
	body.WriteString(titleStyle.Render("Transaction Events"))
	body.WriteString("\n")

	if m.loading {
		body.WriteString(metaStyle.Render(m.spinner.View() + " Loading events..."))
		body.WriteString("\n")
		return body.String()
	}

	if m.err != "" {
		body.WriteString(errorStyle.Render("⚠ " + m.err))
		body.WriteString("\n")
	}

	if len(m.flat) == 0 && m.err == "" {
		body.WriteString(metaStyle.Render("No transaction events yet. Press 'n' to add one."))
		body.WriteString("\n")
	}

	lastClient := ""
	for i, event := range m.flat {
		if event.Client != lastClient {
			body.WriteString(clientStyle.Render(strings.ToUpper(event.Client)))
			body.WriteString("\n")
			lastClient = event.Client
		}

		line := fmt.Sprintf("%-20s %s", event.PetEventCode, event.PetEventDesc)
		if i == m.cursor {
			body.WriteString(selectedStyle.Render("> " + line))
		} else {
			body.WriteString(rowStyle.Render("  " + line))
		}
		body.WriteString("\n")
	}

	body.WriteString(helpStyle.Render("n: new • e: edit • r: reload • esc: back"))
	body.WriteString("\n")

	return body.String()
}
