package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputManagerPaths(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	om := NewOutputManager(base)
	require.NoError(t, om.EnsureOutputDirExists())

	path, err := om.GetOutputFilePath("run-1", "../../clean.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run-1", "clean.csv"), path)

	assert.False(t, om.Exists("user_data.csv"))
	require.NoError(t, os.WriteFile(om.GetFilePath("user_data.csv"), []byte("a\n"), 0o644))
	assert.True(t, om.Exists("user_data.csv"))
}

func TestGetFileType(t *testing.T) {
	assert.Equal(t, "csv", GetFileType("a.CSV"))
	assert.Equal(t, "excel", GetFileType("a.xlsx"))
	assert.Equal(t, "xls", GetFileType("legacy.XLS"))
	assert.Equal(t, "unknown", GetFileType("a"))
}
