package util

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// ReadFileString reads a file and returns its contents as a string.
func ReadFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFileLines reads a file and returns its lines.
func ReadFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// ParseSectionFile parses a file made of "%KEY%" headers each followed by
// value lines, the layout pacman uses for its local database entries.
func ParseSectionFile(path string) (map[string][]string, error) {
	lines, err := ReadFileLines(path)
	if err != nil {
		return nil, err
	}
	return ParseSectionLines(lines), nil
}

// ParseSectionLines parses "%KEY%" sections. Values run until the next blank
// line or header. Lines before the first header are ignored.
func ParseSectionLines(lines []string) map[string][]string {
	m := make(map[string][]string)
	key := ""
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) > 2 && strings.HasPrefix(line, "%") && strings.HasSuffix(line, "%") {
			key = line[1 : len(line)-1]
			if _, ok := m[key]; !ok {
				m[key] = nil
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			key = ""
			continue
		}
		if key != "" {
			m[key] = append(m[key], line)
		}
	}
	return m
}

// SectionValue returns the first value of a section, or "" if absent.
func SectionValue(sections map[string][]string, key string) string {
	if v := sections[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// ParseInt64 parses a string to int64.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
