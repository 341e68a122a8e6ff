package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ftahirops/rebootcheck/model"
)

// ErrMalformedIdentifier is returned when a kernel release cannot be split
// into version and variant.
var ErrMalformedIdentifier = errors.New("malformed kernel identifier")

const (
	basePackage    = "linux"
	manjaroVariant = "MANJARO"
)

// knownVariants are variant suffixes that contain dashes themselves and would
// be misparsed by the generic last-dash split. First match wins, so longer
// entries of a family come first.
var knownVariants = []string{
	"ck-generic-v4",
	"ck-generic-v3",
	"ck-generic-v2",
	"ck-generic",
	"ck-zen3",
	"ck-zen2",
	"ck-skylake",
	"ck-haswell",
	"rt-lts",
}

// FromUname resolves a kernel release as printed by `uname -r`.
func FromUname(raw string) (model.KernelIdentity, error) {
	release := strings.TrimSpace(raw)

	for _, v := range knownVariants {
		if head, ok := strings.CutSuffix(release, "-"+v); ok {
			return model.KernelIdentity{
				Version: NormalizeKernelStyle(strings.TrimRight(head, "-")),
				Variant: v,
				Package: basePackage + "-" + v,
			}, nil
		}
	}

	idx := strings.LastIndex(release, "-")
	if idx < 0 {
		return model.KernelIdentity{}, fmt.Errorf("%w: %q has no build suffix", ErrMalformedIdentifier, release)
	}
	tail := release[idx+1:]

	if !isAlpha(tail) {
		return model.KernelIdentity{
			Version: NormalizeKernelStyle(release),
			Package: basePackage,
		}, nil
	}

	id := model.KernelIdentity{
		Version: NormalizeKernelStyle(release[:idx]),
		Variant: tail,
		Package: basePackage + "-" + tail,
	}
	if tail == manjaroVariant {
		pkg, err := manjaroPackage(id.Version)
		if err != nil {
			return model.KernelIdentity{}, err
		}
		id.Package = pkg
	}
	return id, nil
}

// manjaroPackage derives names like "linux61" from a normalized version.
func manjaroPackage(version string) (string, error) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return "", fmt.Errorf("%w: %q lacks major.minor for %s", ErrMalformedIdentifier, version, manjaroVariant)
	}
	return basePackage + parts[0] + parts[1], nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
