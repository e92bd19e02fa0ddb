package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("CVE-2021-44228"), 0o600))

	text, err := readReport(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "CVE-2021-44228", text)

	text, err = readReport(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	_, err = readReport(nil, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestAnalyzeCmd_RequiresInput(t *testing.T) {
	path := ""
	cmd := newAnalyzeCmd(&path)
	cmd.SetArgs([]string{})
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide a report file")
}
