package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/database"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

// ReviewModel walks the imported transactions that landed in an unsorted
// system category and lets the user classify them, optionally learning a rule.
type ReviewModel struct {
	txService       *transaction.Service
	categoryService *category.Service
	rulesService    *matching.Service

	queue      []*transaction.Transaction
	current    *transaction.Transaction
	options    map[transaction.Kind][]huh.Option[int64]
	totalCount int

	form         *huh.Form
	formDesc     string
	formCategory int64
	formRemember bool

	status  string
	loading bool
}

func NewReviewModel(txSvc *transaction.Service, catSvc *category.Service, rulesSvc *matching.Service) ReviewModel {
	return ReviewModel{
		txService:       txSvc,
		categoryService: catSvc,
		rulesService:    rulesSvc,
		loading:         true,
	}
}

func (m ReviewModel) Title() string { return "Revisar sin clasificar" }

func (m ReviewModel) ShortHelp() string {
	return "Esc: volver | Enter: guardar y seguir"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUnsortedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.txs
		m.options = msg.options
		m.totalCount = len(msg.txs)
		cmd := m.next()

		return m, cmd

	case saveResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error al guardar: %v", msg.err)
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		cmd := m.next()

		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

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

	cmd = m.saveCmd()
	m.form = nil

	return m, cmd
}

// next pops the queue and builds the form for the new current transaction.
func (m *ReviewModel) next() tea.Cmd {
	if len(m.queue) == 0 {
		m.current = nil
		m.form = nil
		m.status = "Todo clasificado."

		return nil
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Revisando %d/%d", m.totalCount-len(m.queue), m.totalCount)

	m.formDesc = m.current.Description
	m.formCategory = 0
	m.formRemember = true

	if opts := m.options[m.current.Kind]; len(opts) > 0 {
		m.formCategory = opts[0].Value
	}

	m.form = m.buildForm()

	return m.form.Init()
}

func (m *ReviewModel) buildForm() *huh.Form {
	return huh.NewForm(
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
				Options(m.options[m.current.Kind]...).
				Value(&m.formCategory),

			huh.NewConfirm().
				Key("remember").
				Title("¿Recordar para próximas importaciones?").
				Affirmative("Sí").
				Negative("No").
				Value(&m.formRemember),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ReviewModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.loading {
		return style.Render("Cargando movimientos sin clasificar...")
	}

	if m.current == nil || m.form == nil {
		if m.totalCount == 0 && m.status == "" {
			return style.Render("No hay movimientos sin clasificar.\n\n(Esc para volver)")
		}

		return style.Render(m.status + "\n\n(Esc para volver)")
	}

	info := fmt.Sprintf(
		"Fecha:  %s\nTipo:   %s\nMonto:  %s %s\nCuenta: %s\nOrigen: %s\n",
		FormatDate(m.current.Date),
		m.current.Kind,
		FormatAmount(m.current.Amount),
		m.current.Currency,
		m.current.AccountName,
		m.current.Description,
	)

	return style.Render(fmt.Sprintf("%s\n\n%s\n%s", m.status, info, m.form.View()))
}

type loadUnsortedMsg struct {
	txs     []*transaction.Transaction
	options map[transaction.Kind][]huh.Option[int64]
	err     error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	txSvc := m.txService
	catSvc := m.categoryService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := catSvc.List(ctx, category.ListFilter{Active: new(true)})
		if err != nil {
			return loadUnsortedMsg{err: err}
		}

		options := map[transaction.Kind][]huh.Option[int64]{}

		var txs []*transaction.Transaction

		for _, c := range cats {
			if !c.IsSystem {
				if c.Kind != category.KindSaving {
					kind := transaction.Kind(c.Kind)
					options[kind] = append(options[kind], huh.NewOption(c.Name, c.ID))
				}

				continue
			}

			if c.Name != category.SystemUnsortedIncome && c.Name != category.SystemUnsortedExpense {
				continue
			}

			found, err := unsorted(ctx, txSvc, c.ID)
			if err != nil {
				return loadUnsortedMsg{err: err}
			}

			txs = append(txs, found...)
		}

		slices.SortFunc(txs, func(a, b *transaction.Transaction) int {
			return a.Date.Compare(b.Date)
		})

		return loadUnsortedMsg{txs: txs, options: options}
	}
}

func unsorted(ctx context.Context, svc *transaction.Service, categoryID int64) ([]*transaction.Transaction, error) {
	return svc.List(ctx, transaction.ListFilter{
		CategoryID: &categoryID,
		Flavor:     new(transaction.FlavorNormal),
		Page:       database.Page{Limit: database.MaxLimit},
	})
}

type saveResultMsg struct {
	err error
}

func (m ReviewModel) saveCmd() tea.Cmd {
	tx := m.current
	desc := strings.TrimSpace(m.form.GetString("description"))
	categoryID, _ := m.form.Get("category").(int64)
	remember := m.form.GetBool("remember")
	txSvc := m.txService
	rulesSvc := m.rulesService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if categoryID == 0 {
			return saveResultMsg{err: errors.New("no hay categorías disponibles para este tipo")}
		}

		_, err := txSvc.Update(ctx, tx.ID, transaction.CreateParams{
			Date:         tx.Date,
			CategoryID:   categoryID,
			AccountID:    tx.AccountID,
			Amount:       tx.Amount,
			Currency:     tx.Currency,
			ExchangeRate: tx.ExchangeRate,
			Kind:         tx.Kind,
			Status:       tx.Status,
			Description:  desc,
			Notes:        tx.Notes,
		})
		if err != nil {
			return saveResultMsg{err: err}
		}

		if remember {
			if err := learn(ctx, rulesSvc, tx.Description, desc, categoryID); err != nil {
				return saveResultMsg{err: err}
			}
		}

		return saveResultMsg{}
	}
}

// learn stores a rule for pattern. An existing rule for the same pattern wins.
func learn(ctx context.Context, svc *matching.Service, pattern, desc string, categoryID int64) error {
	if pattern == "" {
		return nil
	}

	_, err := svc.Learn(ctx, matching.LearnParams{
		Pattern:     pattern,
		Description: desc,
		CategoryID:  &categoryID,
	})
	if err != nil && !errors.Is(err, matching.ErrDuplicate) {
		return fmt.Errorf("learn rule: %w", err)
	}

	return nil
}
