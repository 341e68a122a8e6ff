package checks

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/kernel"
	"github.com/ftahirops/rebootcheck/model"
)

// ErrMalformedVersion is returned when an installed kernel version cannot be
// normalized.
var ErrMalformedVersion = errors.New("malformed package version")

// KernelCheck compares the running kernel with the installed kernel package.
type KernelCheck struct {
	running   model.KernelIdentity
	installed string
	logger    *zap.Logger
}

// NewKernelCheck looks up the package providing the running kernel. It fails
// when the package is not installed or its version cannot be normalized.
func NewKernelCheck(running model.KernelIdentity, lookup PackageLookup, logger *zap.Logger) (*KernelCheck, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec, err := lookup.Get(running.Package)
	if err != nil {
		return nil, fmt.Errorf("kernel package: %w", err)
	}
	installed, ok := kernel.NormalizePackageStyle(rec.Version)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrMalformedVersion, rec.Name, rec.Version)
	}
	return &KernelCheck{running: running, installed: installed, logger: logger}, nil
}

func (c *KernelCheck) Name() string { return "kernel" }

// Check reports KernelUpdate when the installed and running versions differ.
func (c *KernelCheck) Check() Result {
	c.logger.Info("kernel",
		zap.String("package", c.running.Package),
		zap.String("installed", c.installed),
		zap.String("running", c.running.Version))
	if c.installed != c.running.Version {
		return KernelUpdate
	}
	return Nothing
}

// Detail describes both versions.
func (c *KernelCheck) Detail() string {
	return fmt.Sprintf("%s installed %s, running %s", c.running.Package, c.installed, c.running.Version)
}
