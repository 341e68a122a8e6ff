package checks

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ftahirops/rebootcheck/model"
	"github.com/ftahirops/rebootcheck/pkgdb"
)

// CriticalPackagesCheck compares package install times with the boot and
// login times. Lists are scanned in order and the first hit decides.
type CriticalPackagesCheck struct {
	rebootPkgs  []string
	sessionPkgs []string
	session     model.SessionInfo
	lookup      PackageLookup
	logger      *zap.Logger
	now         func() time.Time

	detail string
}

// NewCriticalPackagesCheck creates the check. rebootPkgs trigger Reboot when
// installed after boot; sessionPkgs trigger RestartSession when installed
// after the latest login.
func NewCriticalPackagesCheck(rebootPkgs, sessionPkgs []string, info model.SessionInfo, lookup PackageLookup, logger *zap.Logger) *CriticalPackagesCheck {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CriticalPackagesCheck{
		rebootPkgs:  rebootPkgs,
		sessionPkgs: sessionPkgs,
		session:     info,
		lookup:      lookup,
		logger:      logger,
		now:         time.Now,
	}
}

func (c *CriticalPackagesCheck) Name() string { return "critical-packages" }

func (c *CriticalPackagesCheck) Check() Result {
	c.detail = "no critical package updated since boot or login"
	if pkg, ok := c.firstUpdatedAfter(c.rebootPkgs, c.session.BootTime); ok {
		c.detail = fmt.Sprintf("%s updated %s, after boot", pkg.Name, pkg.InstalledAgo(c.now()))
		return Reboot
	}
	if pkg, ok := c.firstUpdatedAfter(c.sessionPkgs, c.session.SessionTime); ok {
		c.detail = fmt.Sprintf("%s updated %s, after login", pkg.Name, pkg.InstalledAgo(c.now()))
		return RestartSession
	}
	return Nothing
}

// Detail describes the package that decided the last result.
func (c *CriticalPackagesCheck) Detail() string { return c.detail }

func (c *CriticalPackagesCheck) firstUpdatedAfter(names []string, since time.Time) (model.PackageRecord, bool) {
	for _, name := range names {
		rec, err := c.lookup.Get(name)
		if err != nil {
			if errors.Is(err, pkgdb.ErrNotFound) {
				c.logger.Debug("package not installed", zap.String("package", name))
			} else {
				c.logger.Warn("skipping package", zap.String("package", name), zap.Error(err))
			}
			continue
		}
		if rec.InstalledAfter(since) {
			c.logger.Info("package updated",
				zap.String("package", rec.Name),
				zap.String("when", rec.InstalledAgo(c.now())))
			return rec, true
		}
	}
	return model.PackageRecord{}, false
}
