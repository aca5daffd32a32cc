package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finanzas/internal/export"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	exportService *export.Service

	state           exportState
	err             error
	timeframePicker TimeframePicker

	selection TimeframeSelectedMsg

	form    *huh.Form
	path    string
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *export.Service, cycles Cycles) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:   svc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(cycles, TimeframePreviousCycle),
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Exportar movimientos" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: volver al menú"
	case exportStateExporting:
		return "Exportando..."
	}

	return "Esc: volver | Enter: confirmar"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.selection = tfMsg
		m.path = defaultExportPath(tfMsg)
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.path = strings.TrimSpace(m.form.GetString("path"))
	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m *ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Archivo de salida").
				Description("El directorio se crea si no existe").
				Placeholder("./movimientos.xlsx").
				Value(&m.path).
				Validate(func(s string) error {
					if !strings.HasSuffix(strings.ToLower(s), ".xlsx") {
						return fmt.Errorf("el archivo debe terminar en .xlsx")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func defaultExportPath(sel TimeframeSelectedMsg) string {
	if sel.All {
		return filepath.Join("exports", "movimientos.xlsx")
	}

	return filepath.Join("exports", fmt.Sprintf("movimientos_%s_%s.xlsx",
		sel.Start.Format("20060102"), sel.End.Format("20060102")))
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(
			faintStyle.Render("Periodo: "+m.selection.Label) + "\n\n" + m.form.View(),
		)

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exportando movimientos...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Exportación completa")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.summary),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	svc := m.exportService
	sel := m.selection
	path := m.path

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		filter := transaction.ListFilter{}
		if !sel.All {
			filter.StartDate = &sel.Start
			filter.EndDate = &sel.End
		}

		rows, err := writeExport(ctx, svc, filter, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: fmt.Sprintf("Periodo:     %s\nMovimientos: %d\nArchivo:     %s", sel.Label, rows, path)}
	}
}

func writeExport(ctx context.Context, svc *export.Service, filter transaction.ListFilter, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}

	rows, err := svc.Export(ctx, filter, f)
	if err != nil {
		f.Close()
		os.Remove(path)

		return 0, err
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export file: %w", err)
	}

	return rows, nil
}
