package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
)

// Timeframe represents a billing-cycle based or custom date range selection.
type Timeframe int

const (
	TimeframeCurrentCycle  Timeframe = 0
	TimeframePreviousCycle Timeframe = 1
	TimeframeLastCycles    Timeframe = 2
	TimeframeAll           Timeframe = 3
	TimeframeCustom        Timeframe = 4
)

// lastCycles is how many cycles TimeframeLastCycles spans.
const lastCycles = 3

func (t Timeframe) String() string {
	switch t {
	case TimeframeCurrentCycle:
		return "Ciclo actual"
	case TimeframePreviousCycle:
		return "Ciclo anterior"
	case TimeframeLastCycles:
		return fmt.Sprintf("Últimos %d ciclos", lastCycles)
	case TimeframeAll:
		return "Todo"
	case TimeframeCustom:
		return "Rango personalizado"
	}

	return "Desconocido"
}

type Cycles interface {
	Recent(ctx context.Context, n int) ([]cycle.Cycle, error)
}

// CycleRange returns the date range tf covers given the most recent cycles,
// oldest first with the current cycle last.
func CycleRange(tf Timeframe, recent []cycle.Cycle) (time.Time, time.Time, string, error) {
	n := len(recent)

	switch tf {
	case TimeframeCurrentCycle:
		if n < 1 {
			break
		}

		c := recent[n-1]

		return c.Start, c.End, c.Name, nil
	case TimeframePreviousCycle:
		if n < 2 {
			break
		}

		c := recent[n-2]

		return c.Start, c.End, c.Name, nil
	case TimeframeLastCycles:
		if n < 1 {
			break
		}

		first := recent[max(n-lastCycles, 0)]
		last := recent[n-1]

		return first.Start, last.End, fmt.Sprintf("%s - %s", first.Name, last.Name), nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("timeframe %q has no cycle range", tf)
	}

	return time.Time{}, time.Time{}, "", errors.New("not enough billing cycles")
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	Label string
	All   bool
}

type timeframeErrMsg struct {
	err error
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	cycles Cycles

	state    timeframeState
	selected Timeframe

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(cycles Cycles, initial Timeframe) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Desde: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Hasta: "

	return TimeframePicker{
		cycles:     cycles,
		state:      timeframeStateSelect,
		selected:   initial,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case timeframeErrMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeCurrentCycle {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		m.err = nil

		switch m.selected {
		case TimeframeCustom:
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		case TimeframeAll:
			return m, func() tea.Msg {
				return TimeframeSelectedMsg{All: true, Label: TimeframeAll.String()}
			}
		}

		return m, m.resolveCmd(m.selected)
	}

	return m, nil
}

func (m TimeframePicker) resolveCmd(tf Timeframe) tea.Cmd {
	cycles := m.cycles

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		recent, err := cycles.Recent(ctx, lastCycles)
		if err != nil {
			return timeframeErrMsg{err: err}
		}

		start, end, label, err := CycleRange(tf, recent)
		if err != nil {
			return timeframeErrMsg{err: err}
		}

		return TimeframeSelectedMsg{Start: start, End: end, Label: label}
	}
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse(time.DateOnly, strings.TrimSpace(m.startInput.Value()))
		if err != nil {
			m.err = errors.New("fecha inicial inválida (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse(time.DateOnly, strings.TrimSpace(m.endInput.Value()))
		if err != nil {
			m.err = errors.New("fecha final inválida (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = errors.New("la fecha final es anterior a la inicial")
			return m, nil
		}

		m.err = nil
		label := fmt.Sprintf("%s - %s", FormatDate(start), FormatDate(end))

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Start: start, End: end, Label: label}
		}

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Rango personalizado:\n\n%s\n%s\n\n(Enter para confirmar, Tab para cambiar, Esc para volver)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	var b strings.Builder

	b.WriteString("Periodo:\n\n")

	for i := TimeframeCurrentCycle; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, i)
	}

	b.WriteString("\n(Enter para elegir, Esc para volver)")

	return b.String() + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
