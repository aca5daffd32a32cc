package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
)

// upcomingWindow is the number of days of upcoming payments shown.
const upcomingWindow = 30

var healthColors = map[dashboard.Health]lipgloss.Color{
	dashboard.HealthHealthy:  lipgloss.Color("46"),
	dashboard.HealthWarning:  lipgloss.Color("214"),
	dashboard.HealthCritical: lipgloss.Color("196"),
}

type DashboardModel struct {
	dashboardService *dashboard.Service

	table     table.Model
	summary   *dashboard.Summary
	available *dashboard.Available
	upcoming  *dashboard.Upcoming

	loading bool
	err     error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Vence", Width: 10},
		{Title: "Días", Width: 5},
		{Title: "Tipo", Width: 12},
		{Title: "Concepto", Width: 28},
		{Title: "Monto", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		dashboardService: svc,
		table:            t,
		loading:          true,
	}
}

func (m DashboardModel) Title() string { return "Resumen" }

func (m DashboardModel) ShortHelp() string { return "Esc: volver | r: recargar" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, nil
		}

		m.summary = msg.summary
		m.available = msg.available
		m.upcoming = msg.upcoming
		m.table.SetRows(upcomingRows(msg.upcoming))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func upcomingRows(u *dashboard.Upcoming) []table.Row {
	rows := make([]table.Row, 0, len(u.Payments))
	for _, p := range u.Payments {
		source := "Préstamo"
		if p.Source == dashboard.SourceCreditCard {
			source = "Tarjeta"
		}

		rows = append(rows, table.Row{
			FormatDate(p.DueDate),
			fmt.Sprintf("%d", p.DaysUntilDue),
			source,
			p.Name,
			FormatAmount(p.Amount),
		})
	}

	return rows
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Cargando resumen...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc para volver)")
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	a := m.available
	health := lipgloss.NewStyle().Foreground(healthColors[a.Health]).Bold(true).Render(strings.ToUpper(string(a.Health)))

	available := box.Render(fmt.Sprintf(
		"Ciclo %s (%s a %s)\n\nIngresos:        %s\nFijos:           %s\nVariables:       %s\nDisponible:      %s\nDías restantes:  %d\nLímite diario:   %s  %s",
		a.Cycle.Name, FormatDate(a.Cycle.Start), FormatDate(a.Cycle.End),
		FormatAmount(a.Income),
		FormatAmount(a.BudgetedFixed),
		FormatAmount(a.SpentVariable),
		FormatAmount(a.Available),
		a.DaysRemaining,
		FormatAmount(a.DailyLimit),
		health,
	))

	s := m.summary
	plan := box.Render(fmt.Sprintf(
		"Plan vs real\n\n           Plan        Real\nIngresos   %-10s  %s\nGastos     %-10s  %s\nAhorro     %-10s  %s\n\nVariación: %s (%s%%)",
		FormatAmount(s.Planned.Income), FormatAmount(s.Actual.Income),
		FormatAmount(s.Planned.Expense), FormatAmount(s.Actual.Expense),
		FormatAmount(s.Planned.Saving), FormatAmount(s.Actual.Saving),
		FormatAmount(s.Variance), s.VariancePct.StringFixed(2),
	))

	u := m.upcoming
	footer := fmt.Sprintf("Pagos próximos %d días: %s | Saldo disponible: %s",
		u.WindowDays, FormatAmount(u.Total), FormatAmount(u.AvailableBalance))
	if u.HasDeficit {
		footer = errorStyle.Render(footer + " | DÉFICIT")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, available, " ", plan),
		"",
		m.table.View(),
		footer,
	))
}

type dashboardMsg struct {
	summary   *dashboard.Summary
	available *dashboard.Available
	upcoming  *dashboard.Upcoming
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	svc := m.dashboardService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		available, err := svc.MonthlyAvailable(ctx)
		if err != nil {
			return dashboardMsg{err: err}
		}

		summary, err := svc.Summary(ctx, available.Cycle.Year, available.Cycle.Month)
		if err != nil {
			return dashboardMsg{err: err}
		}

		upcoming, err := svc.UpcomingPayments(ctx, upcomingWindow)
		if err != nil {
			return dashboardMsg{err: err}
		}

		return dashboardMsg{summary: summary, available: available, upcoming: upcoming}
	}
}
