package view

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	sign := "+"
	if i.tx.Kind == transaction.KindExpense {
		sign = "-"
	}

	desc := i.tx.Description
	if desc == "" {
		desc = "(sin descripción)"
	}

	return fmt.Sprintf("%s  %s%s %s  %s", FormatDate(i.tx.Date), sign, FormatAmount(i.tx.Amount), i.tx.Currency, desc)
}

func (i txItem) Description() string {
	parts := []string{i.tx.CategoryName, i.tx.AccountName, string(i.tx.Status)}
	if i.tx.IsTransfer() {
		parts = append(parts, "transferencia")
	}

	return strings.Join(parts, " · ")
}

func (i txItem) FilterValue() string {
	return i.tx.Description + " " + i.tx.CategoryName + " " + i.tx.Notes
}

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateEditing
)

// kindFilters is the cycle of kind filters toggled with "k".
var kindFilters = []*transaction.Kind{nil, new(transaction.KindIncome), new(transaction.KindExpense)}

type TransactionsModel struct {
	txService       *transaction.Service
	categoryService *category.Service
	rulesService    *matching.Service

	state           txState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form

	filter    transaction.ListFilter
	period    string
	kindIndex int
	txs       []*transaction.Transaction
	status    string
	loading   bool

	selectedTx   *transaction.Transaction
	formDesc     string
	formNotes    string
	formCategory int64
	formStatus   transaction.Status
	formRemember bool
}

func NewTransactionsModel(txSvc *transaction.Service, catSvc *category.Service, rulesSvc *matching.Service, cycles Cycles) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Movimientos"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService:       txSvc,
		categoryService: catSvc,
		rulesService:    rulesSvc,
		timeframePicker: NewTimeframePicker(cycles, TimeframeCurrentCycle),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Movimientos" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: volver | Enter: elegir"
	case txStateList:
		return "Esc: volver | Enter: editar | k: tipo | /: buscar"
	case txStateEditing:
		return "Esc: cancelar | Enter/Tab: navegar"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = transaction.ListFilter{Page: database.Page{Limit: database.MaxLimit}}
		if !msg.All {
			m.filter.StartDate = new(msg.Start)
			m.filter.EndDate = new(msg.End)
		}

		m.period = msg.Label
		m.kindIndex = 0
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		m.status = fmt.Sprintf("%s: %d movimientos", m.period, len(msg.txs))
		if len(msg.txs) == database.MaxLimit {
			m.status += " (lista truncada)"
		}

		return m, nil

	case saveTxResultMsg:
		m.state = txStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error al guardar: %v", msg.err)
			return m, nil
		}

		m.status = "Guardado."

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}

			m.state = txStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "enter":
			return m.startEditing()
		case "k":
			m.kindIndex = (m.kindIndex + 1) % len(kindFilters)
			m.filter.Kind = kindFilters[m.kindIndex]
			m.loading = true

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	if selected.tx.IsTransfer() {
		m.status = "Las transferencias se editan desde la API."
		return m, nil
	}

	ctx, cancel := DbCtx()
	defer cancel()

	cats, err := m.categoryService.List(ctx, category.ListFilter{
		Kind:   new(category.Kind(selected.tx.Kind)),
		Active: new(true),
	})
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	options := make([]huh.Option[int64], 0, len(cats))
	for _, c := range cats {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	m.selectedTx = selected.tx
	m.formDesc = selected.tx.Description
	m.formNotes = selected.tx.Notes
	m.formCategory = selected.tx.CategoryID
	m.formStatus = selected.tx.Status
	m.formRemember = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Descripción").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("la descripción no puede estar vacía")
					}
					return nil
				}),

			huh.NewSelect[int64]().
				Key("category").
				Title("Categoría").
				Options(options...).
				Value(&m.formCategory),

			huh.NewSelect[transaction.Status]().
				Key("status").
				Title("Estado").
				Options(
					huh.NewOption("Completado", transaction.StatusCompleted),
					huh.NewOption("Pendiente", transaction.StatusPending),
					huh.NewOption("Cancelado", transaction.StatusCancelled),
				).
				Value(&m.formStatus),

			huh.NewText().
				Key("notes").
				Title("Notas").
				Lines(3).
				Value(&m.formNotes),

			huh.NewConfirm().
				Key("remember").
				Title("¿Recordar como regla de descripción?").
				Description("Aplica a futuras importaciones con la descripción original").
				Affirmative("Sí").
				Negative("No").
				Value(&m.formRemember),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil

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

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Cargando movimientos...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = faintStyle.Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.txInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) txInfoView() string {
	if m.selectedTx == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Fecha: %s  |  Tipo: %s  |  Monto: %s %s\nCuenta: %s",
			FormatDate(m.selectedTx.Date),
			m.selectedTx.Kind,
			FormatAmount(m.selectedTx.Amount),
			m.selectedTx.Currency,
			m.selectedTx.AccountName,
		))
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	filter := m.filter
	svc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	tx := m.selectedTx
	desc := strings.TrimSpace(m.form.GetString("description"))
	notes := m.form.GetString("notes")
	categoryID, _ := m.form.Get("category").(int64)
	status, _ := m.form.Get("status").(transaction.Status)
	remember := m.form.GetBool("remember")
	txSvc := m.txService
	rulesSvc := m.rulesService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := txSvc.Update(ctx, tx.ID, transaction.CreateParams{
			Date:         tx.Date,
			CategoryID:   categoryID,
			AccountID:    tx.AccountID,
			Amount:       tx.Amount,
			Currency:     tx.Currency,
			ExchangeRate: tx.ExchangeRate,
			Kind:         tx.Kind,
			Status:       status,
			Description:  desc,
			Notes:        notes,
		})
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		if remember {
			if err := learn(ctx, rulesSvc, tx.Description, desc, categoryID); err != nil {
				return saveTxResultMsg{err: err}
			}
		}

		return saveTxResultMsg{}
	}
}

type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", faintStyle.Render(i.Description()))
}
