package kernel

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/ftahirops/rebootcheck/util"
)

const osReleasePath = "/proc/sys/kernel/osrelease"

// Running returns the release string of the running kernel.
func Running() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		if release := unix.ByteSliceToString(uts.Release[:]); release != "" {
			return release, nil
		}
	}
	release, err := util.ReadFileString(osReleasePath)
	if err != nil {
		return "", fmt.Errorf("read kernel release: %w", err)
	}
	return strings.TrimSpace(release), nil
}
