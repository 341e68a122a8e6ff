package checks

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/rebootcheck/kernel"
	"github.com/ftahirops/rebootcheck/model"
	"github.com/ftahirops/rebootcheck/pkgdb"
)

func TestKernelCheck(t *testing.T) {
	running, err := kernel.FromUname("5.19.9-arch1-1")
	require.NoError(t, err)
	installedAt := time.Now()

	tests := []struct {
		name      string
		installed string
		want      Result
	}{
		{"newer installed", "5.19.11.arch1-1", KernelUpdate},
		{"same version", "5.19.9.arch1-1", Nothing},
		{"new package release", "5.19.9.arch1-2", KernelUpdate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{records: map[string]model.PackageRecord{
				"linux": record("linux", tt.installed, &installedAt),
			}}
			c, err := NewKernelCheck(running, lookup, nil)
			require.NoError(t, err)
			assert.Equal(t, "kernel", c.Name())
			assert.Equal(t, tt.want, c.Check())
			assert.Contains(t, c.Detail(), "running 5.19.9.arch1.1")
		})
	}
}

func TestKernelCheck_Variant(t *testing.T) {
	running, err := kernel.FromUname("5.6.11-zen1-1-zen")
	require.NoError(t, err)

	lookup := &fakeLookup{records: map[string]model.PackageRecord{
		"linux":     record("linux", "5.7.1.arch1-1", nil),
		"linux-zen": record("linux-zen", "5.6.11.zen1-1", nil),
	}}
	c, err := NewKernelCheck(running, lookup, nil)
	require.NoError(t, err)
	assert.Equal(t, Nothing, c.Check())
	assert.Equal(t, []string{"linux-zen"}, lookup.calls)
}

func TestKernelCheck_MissingPatchComponent(t *testing.T) {
	running, err := kernel.FromUname("5.16.0-arch1-1")
	require.NoError(t, err)

	lookup := &fakeLookup{records: map[string]model.PackageRecord{
		"linux": record("linux", "5.16.arch1-1", nil),
	}}
	c, err := NewKernelCheck(running, lookup, nil)
	require.NoError(t, err)
	assert.Equal(t, Nothing, c.Check())
}

func TestNewKernelCheck_Errors(t *testing.T) {
	running, err := kernel.FromUname("6.1.71-1-MANJARO")
	require.NoError(t, err)

	_, err = NewKernelCheck(running, &fakeLookup{}, nil)
	assert.ErrorIs(t, err, pkgdb.ErrNotFound)

	lookup := &fakeLookup{records: map[string]model.PackageRecord{
		"linux61": record("linux61", "unknown", nil),
	}}
	_, err = NewKernelCheck(running, lookup, nil)
	assert.ErrorIs(t, err, ErrMalformedVersion)

	boom := errors.New("database locked")
	_, err = NewKernelCheck(running, &fakeLookup{errs: map[string]error{"linux61": boom}}, nil)
	assert.ErrorIs(t, err, boom)
}
