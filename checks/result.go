package checks

import "fmt"

// Result is the outcome of a check. Values are ordered by severity and
// results are combined by taking the maximum.
type Result int

const (
	Nothing Result = iota
	RestartSession
	Reboot
	KernelUpdate
)

var resultNames = [...]string{
	Nothing:        "nothing",
	RestartSession: "restart-session",
	Reboot:         "reboot",
	KernelUpdate:   "kernel-update",
}

func (r Result) valid() bool { return r >= Nothing && r <= KernelUpdate }

func (r Result) String() string {
	if !r.valid() {
		return fmt.Sprintf("Result(%d)", int(r))
	}
	return resultNames[r]
}

// Summary is the one-line notification title.
func (r Result) Summary() string {
	switch r {
	case RestartSession:
		return "Restart your session"
	case Reboot:
		return "Reboot required"
	case KernelUpdate:
		return "Kernel updated"
	}
	return "Nothing to do"
}

// Body is the longer notification text.
func (r Result) Body() string {
	switch r {
	case RestartSession:
		return "Critical session packages were updated. You should log out and back in."
	case Reboot:
		return "Critical system packages were updated. You should reboot your system!"
	case KernelUpdate:
		return "Kernel got updated. You should reboot your system!"
	}
	return "The running system matches the installed packages."
}

// MarshalText encodes the result by name for JSON and YAML output.
func (r Result) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("invalid result %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a result name.
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := ParseResult(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseResult converts a result name back into a Result.
func ParseResult(s string) (Result, error) {
	for i, name := range resultNames {
		if name == s {
			return Result(i), nil
		}
	}
	return Nothing, fmt.Errorf("unknown result %q", s)
}

// Max returns the most severe result, or Nothing when given none.
func Max(results ...Result) Result {
	worst := Nothing
	for _, r := range results {
		if r > worst {
			worst = r
		}
	}
	return worst
}
