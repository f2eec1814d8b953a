// Package main provides the Verto CLI application.
//
// This is the main entry point for the Verto CLI, an interactive terminal
// dashboard over the Verto release-tracking API. The CLI uses the Bubble Tea
// framework to provide a view-based navigation system with screens for the
// release dashboard, organizations, transaction events, pending invites and
// account settings.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muhammadjan5/verto-ux/cli/internal/ui/components"

	verto "github.com/muhammadjan5/verto-ux/sdk"
	"github.com/muhammadjan5/verto-ux/sdk/models"
	"github.com/muhammadjan5/verto-ux/sdk/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

type ViewState int

type NavigateMsg struct {
	view ViewState
}

type navigateToReleaseFormMsg struct {
	clientCode string
	env        string
	release    *models.Release
}

type navigateToActivityMsg struct {
	client string
}

type navigateToTransactionFormMsg struct {
	event *models.TransactionEvent
}

type navigateToInviteFormMsg struct {
	client string
}

// signedInMsg fires after a successful login, signup or invite acceptance.
type signedInMsg struct{}

// signedOutMsg fires after logout; all caches are already cleared.
type signedOutMsg struct{}

const (
	ViewLogin ViewState = iota
	ViewMainMenu
	ViewDashboard
	ViewReleaseForm
	ViewActivity
	ViewOrganizations
	ViewOrgForm
	ViewTransactions
	ViewTransactionForm
	ViewInvites
	ViewInviteForm
	ViewSettings
)

type Model struct {
	ws *workspace.Workspace

	currentView     ViewState
	login           LoginModel
	mainMenu        MainMenuModel
	dashboard       DashboardModel
	releaseForm     ReleaseFormModel
	activity        ActivityModel
	organizations   OrganizationsModel
	orgForm         OrgFormModel
	transactions    TransactionsModel
	transactionForm TransactionFormModel
	invites         InvitesModel
	inviteForm      InviteFormModel
	settings        SettingsModel
	quitting        bool
}

func newModel(ws *workspace.Workspace) Model {
	m := Model{
		ws:            ws,
		currentView:   ViewLogin,
		login:         NewLoginModel(ws),
		mainMenu:      NewMainMenuModel(ws),
		dashboard:     NewDashboardModel(ws),
		organizations: NewOrganizationsModel(ws),
		transactions:  NewTransactionsModel(ws),
		invites:       NewInvitesModel(ws),
		settings:      NewSettingsModel(ws),
	}

	// A persisted session skips the login screen.
	if ws.Session.SignedIn() {
		m.currentView = ViewMainMenu
	}

	return m
}

func (m Model) Init() tea.Cmd {
	if m.currentView == ViewMainMenu {
		return m.mainMenu.Init()
	}
	return m.login.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle session transitions first; they reset whole view stacks.
	if _, ok := msg.(signedInMsg); ok {
		logDebug("signed in as %s", sessionEmail(m.ws))
		m.mainMenu = NewMainMenuModel(m.ws)
		m.currentView = ViewMainMenu
		return m, m.mainMenu.Init()
	}

	if _, ok := msg.(signedOutMsg); ok {
		logDebug("signed out")
		m.login = NewLoginModel(m.ws)
		m.currentView = ViewLogin
		return m, m.login.Init()
	}

	// Handle navigation to the release form with edit data.
	if navMsg, ok := msg.(navigateToReleaseFormMsg); ok {
		m.releaseForm = NewReleaseFormModel(m.ws, navMsg.clientCode, navMsg.env, navMsg.release)
		m.currentView = ViewReleaseForm
		return m, m.releaseForm.Init()
	}

	// Handle navigation to an organization's activity trail.
	if navMsg, ok := msg.(navigateToActivityMsg); ok {
		m.activity = NewActivityModel(m.ws, navMsg.client)
		m.currentView = ViewActivity
		return m, m.activity.Init()
	}

	// Handle navigation to the transaction event form.
	if navMsg, ok := msg.(navigateToTransactionFormMsg); ok {
		m.transactionForm = NewTransactionFormModel(m.ws, navMsg.event)
		m.currentView = ViewTransactionForm
		return m, m.transactionForm.Init()
	}

	// Handle navigation to the collaborator invite form.
	if navMsg, ok := msg.(navigateToInviteFormMsg); ok {
		m.inviteForm = NewInviteFormModel(m.ws, navMsg.client)
		m.currentView = ViewInviteForm
		return m, m.inviteForm.Init()
	}

	// Handle navigation messages
	if navMsg, ok := msg.(NavigateMsg); ok {
		m.currentView = navMsg.view
		switch navMsg.view {
		case ViewLogin:
			return m, m.login.Init()
		case ViewMainMenu:
			return m, m.mainMenu.Init()
		case ViewDashboard:
			m.dashboard = NewDashboardModel(m.ws)
			return m, m.dashboard.Init()
		case ViewOrganizations:
			m.organizations = NewOrganizationsModel(m.ws)
			return m, m.organizations.Init()
		case ViewOrgForm:
			m.orgForm = NewOrgFormModel(m.ws)
			return m, m.orgForm.Init()
		case ViewTransactions:
			m.transactions = NewTransactionsModel(m.ws)
			return m, m.transactions.Init()
		case ViewInvites:
			m.invites = NewInvitesModel(m.ws)
			return m, m.invites.Init()
		case ViewSettings:
			m.settings = NewSettingsModel(m.ws)
			return m, m.settings.Init()
		}
		return m, nil
	}

	// Handle global key commands
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()

		if m.currentView == ViewMainMenu && k == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	// Route updates to current view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewMainMenu:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewReleaseForm:
		m.releaseForm, cmd = m.releaseForm.Update(msg)
	case ViewActivity:
		m.activity, cmd = m.activity.Update(msg)
	case ViewOrganizations:
		m.organizations, cmd = m.organizations.Update(msg)
	case ViewOrgForm:
		m.orgForm, cmd = m.orgForm.Update(msg)
	case ViewTransactions:
		m.transactions, cmd = m.transactions.Update(msg)
	case ViewTransactionForm:
		m.transactionForm, cmd = m.transactionForm.Update(msg)
	case ViewInvites:
		m.invites, cmd = m.invites.Update(msg)
	case ViewInviteForm:
		m.inviteForm, cmd = m.inviteForm.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "bye!\n"
	}

	switch m.currentView {
	case ViewLogin:
		return m.login.View()
	case ViewMainMenu:
		return m.mainMenu.View()
	case ViewDashboard:
		return m.dashboard.View()
	case ViewReleaseForm:
		return m.releaseForm.View()
	case ViewActivity:
		return m.activity.View()
	case ViewOrganizations:
		return m.organizations.View()
	case ViewOrgForm:
		return m.orgForm.View()
	case ViewTransactions:
		return m.transactions.View()
	case ViewTransactionForm:
		return m.transactionForm.View()
	case ViewInvites:
		return m.invites.View()
	case ViewInviteForm:
		return m.inviteForm.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return "Unknown view\n"
	}
}

func sessionEmail(ws *workspace.Workspace) string {
	if user := ws.Session.User(); user != nil {
		return user.Email
	}
	return ""
}

func buildWorkspace() *workspace.Workspace {
	cfg := LoadAppConfig()

	var opts []verto.ClientOption
	if cfg.APIURL != "" {
		opts = append(opts, verto.WithBaseURL(cfg.APIURL))
	}

	return workspace.New(NewFileSessionStorage(cfg.SessionFile), opts...)
}

// exportReleases writes the current release snapshot to CSV and JSON files in
// the working directory without starting the TUI.
func exportReleases() error {
	ws := buildWorkspace()
	if !ws.Session.SignedIn() {
		return fmt.Errorf("not signed in; run the CLI and log in first")
	}

	ctx := context.Background()
	if err := ws.Store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load releases: %w", err)
	}

	files, err := writeSnapshotFiles(ws, ".")
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Printf("wrote %s\n", f)
	}
	return nil
}

func main() {
	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h" || os.Args[1] == "help") {
		fmt.Printf("Verto CLI - Track release metadata across client environments\n\n")
		fmt.Printf("Usage:\n")
		fmt.Printf("  verto [command] [options]\n\n")
		fmt.Printf("Commands:\n")
		fmt.Printf("  export             Write the release snapshot to CSV and JSON files\n")
		fmt.Printf("  --version, -v      Show version information\n")
		fmt.Printf("  --help, -h         Show this help message\n\n")
		fmt.Printf("Interactive Mode:\n")
		fmt.Printf("  Run 'verto' without any commands to start the interactive dashboard\n\n")
		fmt.Printf("Environment:\n")
		fmt.Printf("  VERTO_API_URL       API base URL (default http://localhost:3000)\n")
		fmt.Printf("  VERTO_SESSION_FILE  Session file path (default ~/.verto/session.json)\n")
		os.Exit(0)
	}

	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("Verto CLI version %s\n", components.Version)
		fmt.Printf("Git commit: %s\n", components.GitCommit)
		fmt.Printf("Built: %s\n", components.BuildTime)
		os.Exit(0)
	}

	// Handle export command
	if len(os.Args) > 1 && os.Args[1] == "export" {
		if err := exportReleases(); err != nil {
			fmt.Printf("Error exporting releases: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Initialize debug logger
	if err := initLogger(); err != nil {
		fmt.Printf("Warning: failed to initialize logger: %v\n", err)
	}

	initialModel := newModel(buildWorkspace())
	p := tea.NewProgram(initialModel)

	if _, err := p.Run(); err != nil {
		fmt.Println("could not run program:", err)
	}
}
