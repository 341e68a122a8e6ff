// Package kernel resolves the running kernel into the package that provides
// it and normalizes version strings so that the running release and the
// installed package can be compared with plain string equality.
package kernel

import (
	"strconv"
	"strings"
)

// NormalizeKernelStyle canonicalizes a uname-style release such as
// "5.6.13-arch1-1". It never fails and is idempotent.
func NormalizeKernelStyle(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "-", ".")
}

// NormalizePackageStyle canonicalizes a package database version such as
// "5.16.arch1-1" into "5.16.0.arch1.1". The major and minor components are
// required; a missing patch component is filled with 0. It reports false when
// the input does not start with major[.]minor.
func NormalizePackageStyle(raw string) (string, bool) {
	var sb strings.Builder

	major, rest, ok := readNumber(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	sb.WriteString(major)
	sb.WriteByte('.')
	rest = skipDot(rest)

	minor, rest, ok := readNumber(rest)
	if !ok {
		return "", false
	}
	sb.WriteString(minor)
	sb.WriteByte('.')
	rest = skipDot(rest)

	if _, _, ok := readNumber(rest); !ok {
		sb.WriteByte('0')
		// A leading dash becomes the separator itself.
		if rest != "" && rest[0] != '-' {
			sb.WriteByte('.')
		}
	}
	sb.WriteString(rest)

	return strings.ReplaceAll(sb.String(), "-", "."), true
}

// readNumber reads the leading run of decimal digits and returns it without
// leading zeros together with the remaining input.
func readNumber(input string) (string, string, bool) {
	end := 0
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}
	if end == 0 {
		return "", input, false
	}
	n, err := strconv.ParseUint(input[:end], 10, 32)
	if err != nil {
		return "", input, false
	}
	return strconv.FormatUint(n, 10), input[end:], true
}

func skipDot(input string) string {
	return strings.TrimPrefix(input, ".")
}
