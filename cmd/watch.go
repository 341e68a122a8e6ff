package cmd

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ftahirops/rebootcheck/checks"
	"github.com/ftahirops/rebootcheck/notify"
	"github.com/ftahirops/rebootcheck/ui"
)

// watchDebounce is how long the package database must stay quiet before a
// change triggers a re-evaluation.
const watchDebounce = 2 * time.Second

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show a live view that re-checks after package upgrades",
		Long: `Opens a full-screen view that re-evaluates on start, every watch.interval, and
whenever the pacman database changes. Keys: r refresh, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd)
		},
	}
}

func (a *app) runWatch(cmd *cobra.Command) error {
	// Log lines would tear the full-screen view.
	logger := a.logger
	if !a.verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}

	var changes <-chan struct{}
	if w := a.watchPackageDB(logger); w != nil {
		defer w.Close()
		changes = w.Changes()
	}

	eval := newWatchEval(cmd.Context(), a, logger)
	p := tea.NewProgram(ui.NewModel(eval.run, a.cfg.Watch.Interval, changes),
		tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}

// watchPackageDB starts the change watcher, or returns nil when the database
// cannot be watched. That happens before the view takes over the screen, so
// the failure goes to the unfiltered logger.
func (a *app) watchPackageDB(logger *zap.Logger) *ui.Watcher {
	w, err := ui.NewWatcher(a.cfg.PacmanDB, watchDebounce, logger)
	if err != nil {
		a.logger.Warn("package database not watched", zap.String("dir", a.cfg.PacmanDB), zap.Error(err))
		return nil
	}
	return w
}

// watchEval evaluates for the live view and notifies when the verdict
// changes to one that needs action.
type watchEval struct {
	ctx    context.Context
	a      *app
	logger *zap.Logger
	n      *notify.Notifier

	mu   sync.Mutex
	last checks.Result
}

func newWatchEval(ctx context.Context, a *app, logger *zap.Logger) *watchEval {
	return &watchEval{ctx: ctx, a: a, logger: logger, n: notify.New(a.cfg.Notify, logger)}
}

func (e *watchEval) run() (checks.Report, error) {
	report, err := evaluate(e.a.cfg, e.logger)
	if err != nil {
		return report, err
	}

	e.mu.Lock()
	changed := report.Verdict != e.last
	e.last = report.Verdict
	e.mu.Unlock()

	if changed && e.n.Enabled() {
		if err := e.n.Send(e.ctx, report.Verdict); err != nil {
			e.logger.Warn("notification failed", zap.Error(err))
		}
	}
	return report, nil
}
