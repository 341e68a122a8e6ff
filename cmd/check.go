package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/checks"
	"github.com/ftahirops/rebootcheck/notify"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check once and print the verdict",
		Long: `Evaluates the kernel and critical package checks once and prints the report.

With --exit-code the process exits with the verdict as status:
  0  nothing to do
  1  restart the session
  2  reboot
  3  kernel updated, reboot

A run that fails, for example because no check could be built, also exits 1
and prints the error on stderr. Tell it apart from a session restart by the
empty report on stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
}

func (a *app) runCheck(cmd *cobra.Command) error {
	report, err := evaluate(a.cfg, a.logger)
	if err != nil {
		return err
	}
	if err := render(cmd.OutOrStdout(), a.cfg.Output, report); err != nil {
		return err
	}

	n := notify.New(a.cfg.Notify, a.logger)
	if n.Enabled() {
		if err := n.Send(cmd.Context(), report.Verdict); err != nil {
			a.logger.Warn("notification failed", zap.Error(err))
		}
	}

	if a.cfg.ExitCode && report.Verdict != checks.Nothing {
		return ExitCodeError{Code: int(report.Verdict)}
	}
	return nil
}
