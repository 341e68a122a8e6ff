// Package checks holds the reboot checks and the runner that combines their
// results into a single verdict.
package checks

import (
	"time"

	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/model"
)

// Check is a single independent check. All inputs are captured at
// construction.
type Check interface {
	Name() string
	Check() Result
}

// PackageLookup returns the installed record of a package. Missing packages
// are reported with an error matching pkgdb.ErrNotFound.
type PackageLookup interface {
	Get(name string) (model.PackageRecord, error)
}

// Outcome is the result of one check within a report.
type Outcome struct {
	Name   string `json:"name" yaml:"name"`
	Result Result `json:"result" yaml:"result"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Report holds the outcome of a full run.
type Report struct {
	Timestamp time.Time             `json:"timestamp" yaml:"timestamp"`
	Hostname  string                `json:"hostname" yaml:"hostname"`
	Kernel    *model.KernelIdentity `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	Checks    []Outcome             `json:"checks" yaml:"checks"`
	Failures  []string              `json:"failures,omitempty" yaml:"failures,omitempty"`
	Verdict   Result                `json:"verdict" yaml:"verdict"`
}

// Detailer is implemented by checks that can describe their last result.
type Detailer interface {
	Detail() string
}

// Runner evaluates checks one after another.
type Runner struct {
	checks []Check
	logger *zap.Logger
}

// NewRunner creates a runner for the given checks.
func NewRunner(logger *zap.Logger, checks ...Check) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{checks: checks, logger: logger}
}

// Add registers an additional check.
func (r *Runner) Add(c Check) {
	r.checks = append(r.checks, c)
}

// Len returns the number of registered checks.
func (r *Runner) Len() int { return len(r.checks) }

// Run evaluates every check in order and fills Checks and Verdict of a new
// report.
func (r *Runner) Run() Report {
	report := Report{Timestamp: time.Now()}
	results := make([]Result, 0, len(r.checks))
	for _, c := range r.checks {
		res := c.Check()
		out := Outcome{Name: c.Name(), Result: res}
		if d, ok := c.(Detailer); ok {
			out.Detail = d.Detail()
		}
		r.logger.Debug("check finished", zap.String("check", out.Name), zap.Stringer("result", res))
		report.Checks = append(report.Checks, out)
		results = append(results, res)
	}
	report.Verdict = Max(results...)
	return report
}
