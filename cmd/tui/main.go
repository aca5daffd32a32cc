package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finanzas/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finanzas/internal/app"
	"github.com/MrJamesThe3rd/finanzas/internal/config"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/logging"
)

type model struct {
	svc *app.Services

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	importView       view.ImportModel
	reviewView       view.ReviewModel
	exportView       view.ExportModel

	help string
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewImport       View = 3
	ViewReview       View = 4
	ViewExport       View = 5
)

func initialModel(svc *app.Services) model {
	return model{
		svc:         svc,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.svc.Dashboard)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.svc.Transactions, m.svc.Categories, m.svc.Rules, m.svc.Cycles)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc.Import, m.svc.Accounts)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.svc.Transactions, m.svc.Categories, m.svc.Rules)

				return m, m.reviewView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.svc.Export, m.svc.Cycles)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.help = ""

		return m, nil
	}

	var current view.View

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
		current = m.dashboardView
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
		current = m.transactionsView
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
		current = m.importView
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
		current = m.reviewView
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
		current = m.exportView
	}

	if current != nil {
		m.help = current.Title() + " · " + current.ShortHelp()
	}

	return m, cmd
}

func (m model) View() string {
	var body string

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Finanzas\n\n" +
				"1. Resumen del ciclo\n" +
				"2. Movimientos\n" +
				"3. Importar Excel/CSV\n" +
				"4. Revisar sin clasificar\n" +
				"5. Exportar a Excel\n\n" +
				"q. Salir",
		)
	case ViewDashboard:
		body = m.dashboardView.View()
	case ViewTransactions:
		body = m.transactionsView.View()
	case ViewImport:
		body = m.importView.View()
	case ViewReview:
		body = m.reviewView.View()
	case ViewExport:
		body = m.exportView.View()
	default:
		return "Vista desconocida"
	}

	if m.help == "" {
		return body
	}

	return body + "\n" + lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(m.help)
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(os.TempDir(), "finanzas-tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := logging.New(logFile, cfg.App.LogFormat, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	slog.SetDefault(logger)

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	p := tea.NewProgram(initialModel(app.New(db, cfg, logger, nil)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

