package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _RunConfig(t *testing.T) string {
	t.Helper()
	network, err := filepath.Abs("./testdata/tram.yaml")
	require.NoError(t, err)
	data := filepath.Join(t.TempDir(), "data")
	return _WriteConfig(t, fmt.Sprintf("source:\n  network: %v\ndata: %v\nlog:\n  level: warn\n", network, data))
}

func TestRunExitCodes(t *testing.T) {
	config := _RunConfig(t)
	var out bytes.Buffer

	assert.Equal(t, 2, run([]string{"-config", config}, &out), "no query given")
	assert.Equal(t, 2, run([]string{"-unknown"}, &out))
	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "none.yaml"), "-from", "W", "-to", "Z"}, &out))
	assert.Equal(t, 2, run([]string{"-config", config, "-from", "W", "-to", "Z", "-time", "noon"}, &out))
	assert.Equal(t, 1, run([]string{"-config", config, "-from", "W", "-to", "Q", "-date", "2024-05-06", "-time", "07:55"}, &out))
}

func TestRunQuery(t *testing.T) {
	config := _RunConfig(t)
	var out bytes.Buffer
	code := run([]string{"-config", config, "-from", "W", "-to", "Z", "-date", "2024-05-06", "-time", "07:55"}, &out)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "08:21")
	assert.Contains(t, out.String(), "Zoo")

	out.Reset()
	code = run([]string{"-config", config, "-grid", "Z", "-date", "2024-05-06", "-time", "07:55"}, &out)
	require.Equal(t, 0, code)
	assert.NotEmpty(t, out.String())
}
