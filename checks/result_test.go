package checks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResultOrdering(t *testing.T) {
	assert.Less(t, Nothing, RestartSession)
	assert.Less(t, RestartSession, Reboot)
	assert.Less(t, Reboot, KernelUpdate)
}

func TestMax(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    Result
	}{
		{"empty", nil, Nothing},
		{"all nothing", []Result{Nothing, Nothing}, Nothing},
		{"all four", []Result{Nothing, RestartSession, Reboot, KernelUpdate}, KernelUpdate},
		{"order independent", []Result{Reboot, Nothing, RestartSession}, Reboot},
		{"single", []Result{RestartSession}, RestartSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Max(tt.results...))
		})
	}
}

func TestResultText(t *testing.T) {
	for _, r := range []Result{Nothing, RestartSession, Reboot, KernelUpdate} {
		t.Run(r.String(), func(t *testing.T) {
			assert.NotEmpty(t, r.Summary())
			assert.NotEmpty(t, r.Body())

			parsed, err := ParseResult(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		})
	}

	_, err := ParseResult("shutdown")
	assert.Error(t, err)
	assert.Equal(t, "Result(9)", Result(9).String())
	_, err = Result(-1).MarshalText()
	assert.Error(t, err)
}

func TestResultEncoding(t *testing.T) {
	out := Outcome{Name: "kernel", Result: KernelUpdate}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"kernel","result":"kernel-update"}`, string(data))

	var back Outcome
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, out, back)

	data, err = yaml.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "result: kernel-update")

	assert.Error(t, json.Unmarshal([]byte(`{"result":"later"}`), &back))
}
