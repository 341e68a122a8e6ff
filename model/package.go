package model

import (
	"time"

	"github.com/dustin/go-humanize"
)

// PackageRecord is a read-only snapshot of one installed package.
type PackageRecord struct {
	Name        string     `json:"name" yaml:"name"`
	Version     string     `json:"version" yaml:"version"`
	InstallDate *time.Time `json:"install_date,omitempty" yaml:"install_date,omitempty"`
}

// InstalledAfter reports whether the package is known to have been installed
// strictly after t. An unknown install date never counts.
func (p PackageRecord) InstalledAfter(t time.Time) bool {
	return p.InstallDate != nil && p.InstallDate.After(t)
}

// InstalledAgo returns a relative install time such as "3 hours ago",
// or "unknown" when the database does not record one.
func (p PackageRecord) InstalledAgo(now time.Time) string {
	if p.InstallDate == nil {
		return "unknown"
	}
	return humanize.RelTime(*p.InstallDate, now, "ago", "from now")
}
