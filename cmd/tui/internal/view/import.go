package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateAccount importState = iota
	importStateFilePick
	importStateImporting
	importStateConflicts
	importStateResult
)

type ImportModel struct {
	importService  *importer.Service
	accountService *account.Service

	state      importState
	form       *huh.Form
	accountID  int64
	filePicker filepicker.Model
	path       string

	conflicts    []transaction.Conflict
	pending      int
	conflictList list.Model

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, accSvc *account.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".xlsx", ".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService:  impSvc,
		accountService: accSvc,
		filePicker:     fp,
	}
}

func (m ImportModel) Title() string { return "Importar movimientos" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateConflicts {
		return "Enter: importar todo igualmente | Esc: cancelar"
	}

	return "Esc: volver | Enter: elegir"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateConflicts {
			return m.updateConflicts(msg)
		}

	case accountsMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.form = buildAccountForm(msg.accounts, &m.accountID)
		m.state = importStateAccount

		return m, m.form.Init()

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.result.Conflicts) == 0 {
			m.state = importStateResult
			m.status = fmt.Sprintf("Importados %d de %d movimientos (%s).",
				len(msg.result.Imported), msg.result.Rows, msg.result.Format)

			return m, nil
		}

		m.conflicts = msg.result.Conflicts
		m.pending = msg.result.Pending
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c}
		}

		m.conflictList = list.New(items, conflictDelegate{}, 80, 20)
		m.conflictList.Title = fmt.Sprintf("Posibles duplicados (%d filas en espera)", m.pending)
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil
	}

	switch m.state {
	case importStateAccount:
		return m.updateAccount(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStateConflicts:
		m.conflicts = nil
		m.err = nil
		m.status = ""

		return m, m.loadAccountsCmd()
	}

	return m, Back
}

func (m ImportModel) updateAccount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.accountID, _ = m.form.Get("account").(int64)
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importando %s...", filepath.Base(path))

		return m, m.importCmd(false)
	}

	return m, cmd
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.state = importStateImporting
		m.status = "Importando todas las filas..."

		return m, m.importCmd(true)
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateAccount:
		if m.form == nil {
			return lipgloss.NewStyle().Padding(2).Render("Cargando cuentas...")
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Elige el archivo a importar (.xlsx o .csv):\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(m.conflictList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := successStyle
	if m.err != nil {
		style = errorStyle
	}

	return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc para volver)")
}

func buildAccountForm(accounts []*account.Account, value *int64) *huh.Form {
	options := []huh.Option[int64]{huh.NewOption("Según la columna Cuenta del archivo", int64(0))}
	for _, a := range accounts {
		label := fmt.Sprintf("%s (%s)", a.Name, a.Currency)
		if a.IsDefault {
			label += " *"
		}

		options = append(options, huh.NewOption(label, a.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("account").
				Title("Cuenta por defecto").
				Description("Se usa en las filas sin cuenta").
				Options(options...).
				Value(value),
		),
	).WithWidth(60).WithShowHelp(false)
}

type accountsMsg struct {
	accounts []*account.Account
	err      error
}

func (m ImportModel) loadAccountsCmd() tea.Cmd {
	svc := m.accountService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := svc.List(ctx, account.ListFilter{Active: new(true)})

		return accountsMsg{accounts: accounts, err: err}
	}
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) importCmd(force bool) tea.Cmd {
	svc := m.importService
	path := m.path

	params := importer.Params{Filename: filepath.Base(path), Force: force}
	if m.accountID != 0 {
		params.AccountID = new(m.accountID)
	}

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := svc.Import(ctx, params, f)

		return importResultMsg{result: result, err: err}
	}
}

type conflictItem struct {
	conflict transaction.Conflict
}

func (i conflictItem) FilterValue() string { return i.conflict.Incoming.Description }

type conflictDelegate struct{}

func (d conflictDelegate) Height() int                             { return 2 }
func (d conflictDelegate) Spacing() int                            { return 1 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	fmt.Fprintf(w, "%sNuevo:     %s  %s  %s\n",
		cursor,
		FormatDate(incoming.Date),
		FormatAmount(incoming.Amount),
		incoming.Description,
	)

	fmt.Fprint(w, faintStyle.Render(fmt.Sprintf("  Existente: %s  %s  %s [%s]",
		FormatDate(existing.Date),
		FormatAmount(existing.Amount),
		existing.Description,
		existing.Status,
	)))
}
