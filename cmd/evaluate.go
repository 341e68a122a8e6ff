package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/checks"
	"github.com/ftahirops/rebootcheck/config"
	"github.com/ftahirops/rebootcheck/kernel"
	"github.com/ftahirops/rebootcheck/model"
	"github.com/ftahirops/rebootcheck/pkgdb"
	"github.com/ftahirops/rebootcheck/session"
)

// For testing.
var (
	runningKernel = kernel.Running
	hostname      = os.Hostname
)

// plan is the set of checks that could be constructed for one run.
type plan struct {
	runner   *checks.Runner
	kernel   *model.KernelIdentity
	failures []string
}

// buildPlan constructs every check it can. A check whose inputs cannot be
// gathered is left out and its error recorded; the run fails only when no
// check could be built.
func buildPlan(cfg config.Config, logger *zap.Logger) (*plan, error) {
	db, err := pkgdb.Open(cfg.PacmanDB, logger)
	if err != nil {
		return nil, fmt.Errorf("open package database: %w", err)
	}
	logger.Debug("package database indexed", zap.String("dir", db.Dir()), zap.Int("packages", db.Len()))

	p := &plan{runner: checks.NewRunner(logger)}
	var merr *multierror.Error

	kc, ident, err := buildKernelCheck(cfg, db, logger)
	p.kernel = ident
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("kernel check: %w", err))
	} else {
		p.runner.Add(kc)
	}

	if info, err := session.Load(cfg.UtmpPath); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("critical packages check: %w", err))
	} else {
		logger.Debug("session",
			zap.Time("boot", info.BootTime),
			zap.Time("login", info.SessionTime))
		p.runner.Add(checks.NewCriticalPackagesCheck(cfg.RebootPackages, cfg.SessionPackages, info, db, logger))
	}

	if merr != nil {
		for _, e := range merr.Errors {
			logger.Warn("check skipped", zap.Error(e))
			p.failures = append(p.failures, e.Error())
		}
	}
	if p.runner.Len() == 0 {
		return nil, merr.ErrorOrNil()
	}
	return p, nil
}

func buildKernelCheck(cfg config.Config, db *pkgdb.DB, logger *zap.Logger) (*checks.KernelCheck, *model.KernelIdentity, error) {
	raw := cfg.Kernel
	if raw == "" {
		var err error
		if raw, err = runningKernel(); err != nil {
			return nil, nil, err
		}
	}
	ident, err := kernel.FromUname(raw)
	if err != nil {
		return nil, nil, err
	}
	kc, err := checks.NewKernelCheck(ident, db, logger)
	if err != nil {
		return nil, &ident, err
	}
	return kc, &ident, nil
}

// evaluate builds and runs the checks once.
func evaluate(cfg config.Config, logger *zap.Logger) (checks.Report, error) {
	p, err := buildPlan(cfg, logger)
	if err != nil {
		return checks.Report{}, err
	}
	report := p.runner.Run()
	report.Kernel = p.kernel
	report.Failures = p.failures
	if h, err := hostname(); err == nil {
		report.Hostname = h
	} else {
		logger.Debug("hostname unavailable", zap.Error(err))
	}
	return report, nil
}
