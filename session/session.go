// Package session derives boot and login baselines from session accounting
// records.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ftahirops/rebootcheck/model"
)

var (
	// ErrNoBootTime is returned when no boot record is present.
	ErrNoBootTime = errors.New("no boot time available")
	// ErrNoSessionTime is returned when no user session record is present.
	ErrNoSessionTime = errors.New("no session time available")
)

// Kind classifies an accounting record.
type Kind int

const (
	KindOther Kind = iota
	KindBootTime
	KindUserProcess
)

func (k Kind) String() string {
	switch k {
	case KindBootTime:
		return "boot"
	case KindUserProcess:
		return "user"
	}
	return "other"
}

// Record is one entry of the accounting file.
type Record struct {
	Kind Kind
	User string
	Line string
	Time time.Time
}

// FromRecords builds SessionInfo from records in file order. The last boot
// record wins; the session time is the latest login among all user records.
func FromRecords(records []Record) (model.SessionInfo, error) {
	var (
		boot, login       time.Time
		haveBoot, haveLog bool
	)
	for _, r := range records {
		switch r.Kind {
		case KindBootTime:
			boot, haveBoot = r.Time, true
		case KindUserProcess:
			if !haveLog || r.Time.After(login) {
				login, haveLog = r.Time, true
			}
		}
	}
	if !haveBoot {
		return model.SessionInfo{}, ErrNoBootTime
	}
	if !haveLog {
		return model.SessionInfo{}, ErrNoSessionTime
	}
	return model.SessionInfo{BootTime: boot, SessionTime: login}, nil
}

// Load reads the accounting file at path and builds SessionInfo from it.
func Load(path string) (model.SessionInfo, error) {
	records, err := ReadUtmp(path)
	if err != nil {
		return model.SessionInfo{}, err
	}
	info, err := FromRecords(records)
	if err != nil {
		return model.SessionInfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}
