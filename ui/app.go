// Package ui implements the live watch view.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/rebootcheck/checks"
)

// EvalFunc runs a full evaluation. It is called off the UI goroutine.
type EvalFunc func() (checks.Report, error)

type tickMsg time.Time

type changeMsg struct{}

type reportMsg struct {
	report checks.Report
	err    error
	at     time.Time
}

// Model is the bubbletea model for the watch view.
type Model struct {
	eval     EvalFunc
	interval time.Duration
	changes  <-chan struct{}

	report     *checks.Report
	err        error
	lastEval   time.Time
	evaluating bool
	pending    bool
	width      int
	height     int
}

// NewModel creates the watch model. changes may be nil when no filesystem
// watch is active.
func NewModel(eval EvalFunc, interval time.Duration, changes <-chan struct{}) Model {
	if interval <= 0 {
		interval = time.Minute
	}
	return Model{
		eval:       eval,
		interval:   interval,
		changes:    changes,
		evaluating: true,
	}
}

// Init starts the first evaluation, the refresh timer and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(evaluate(m.eval), tick(m.interval), waitForChange(m.changes))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func evaluate(eval EvalFunc) tea.Cmd {
	return func() tea.Msg {
		report, err := eval()
		return reportMsg{report: report, err: err, at: time.Now()}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changeMsg{}
	}
}

// refresh starts an evaluation unless one is running, in which case another
// is queued for when it finishes.
func (m Model) refresh() (Model, tea.Cmd) {
	if m.evaluating {
		m.pending = true
		return m, nil
	}
	m.evaluating = true
	return m, evaluate(m.eval)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m.refresh()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		next, cmd := m.refresh()
		return next, tea.Batch(cmd, tick(m.interval))
	case changeMsg:
		next, cmd := m.refresh()
		return next, tea.Batch(cmd, waitForChange(m.changes))
	case reportMsg:
		m.evaluating = false
		m.lastEval = msg.at
		m.err = msg.err
		if msg.err == nil {
			r := msg.report
			m.report = &r
		}
		if m.pending {
			m.pending = false
			return m.refresh()
		}
	}
	return m, nil
}

// View renders the current report.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("rebootcheck"))
	sb.WriteString(DimStyle.Render("  watching"))
	sb.WriteString("\n\n")

	if m.report == nil {
		if m.err != nil {
			sb.WriteString(critStyle.Render("evaluation failed: " + m.err.Error()))
		} else {
			sb.WriteString(DimStyle.Render("Evaluating..."))
		}
		sb.WriteString("\n\n")
		sb.WriteString(m.footer())
		return sb.String()
	}

	r := m.report
	style := ResultStyle(r.Verdict)
	banner := fmt.Sprintf("%s %s", Icon(r.Verdict), r.Verdict.Summary())
	sb.WriteString(panelStyle.BorderForeground(style.GetForeground()).Render(style.Render(banner)))
	sb.WriteString("\n")
	if body := r.Verdict.Body(); body != "" {
		sb.WriteString(ValueStyle.Render(body))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if r.Kernel != nil {
		sb.WriteString(LabelStyle.Render("Kernel  "))
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%s (%s)", r.Kernel.Version, r.Kernel.Package)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(HeaderStyle.Render("Checks"))
	sb.WriteString("\n")
	for _, c := range r.Checks {
		cs := ResultStyle(c.Result)
		line := fmt.Sprintf("  %s %-18s %s", cs.Render(Icon(c.Result)), c.Name, cs.Render(c.Result.String()))
		sb.WriteString(line)
		if c.Detail != "" {
			sb.WriteString(DimStyle.Render("  " + c.Detail))
		}
		sb.WriteString("\n")
	}
	for _, f := range r.Failures {
		sb.WriteString("  " + warnStyle.Render("⚠ "+f) + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + critStyle.Render("last evaluation failed: "+m.err.Error()) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) footer() string {
	parts := []string{}
	if !m.lastEval.IsZero() {
		parts = append(parts, "evaluated "+m.lastEval.Format("15:04:05"))
	}
	if m.evaluating {
		parts = append(parts, "refreshing")
	}
	parts = append(parts, "r refresh", "q quit")
	return lipgloss.NewStyle().Foreground(colorGray).Render(strings.Join(parts, " · "))
}
