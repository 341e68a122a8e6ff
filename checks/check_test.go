package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type staticCheck struct {
	name   string
	result Result
	calls  int
}

func (s *staticCheck) Name() string { return s.name }

func (s *staticCheck) Check() Result {
	s.calls++
	return s.result
}

func TestRunner(t *testing.T) {
	a := &staticCheck{name: "a", result: RestartSession}
	b := &staticCheck{name: "b", result: Nothing}

	r := NewRunner(zaptest.NewLogger(t), a)
	r.Add(b)
	assert.Equal(t, 2, r.Len())

	report := r.Run()
	assert.Equal(t, RestartSession, report.Verdict)
	assert.Equal(t, []Outcome{{Name: "a", Result: RestartSession}, {Name: "b", Result: Nothing}}, report.Checks)
	assert.False(t, report.Timestamp.IsZero())
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestRunner_Empty(t *testing.T) {
	report := NewRunner(nil).Run()
	assert.Equal(t, Nothing, report.Verdict)
	assert.Empty(t, report.Checks)
}

func TestRunner_CollectsDetail(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewRunner(nil, NewCriticalPackagesCheck([]string{"systemd"}, nil, session, lookup, nil))

	report := r.Run()
	assert.Len(t, report.Checks, 1)
	assert.Equal(t, "critical-packages", report.Checks[0].Name)
	assert.NotEmpty(t, report.Checks[0].Detail)
}
