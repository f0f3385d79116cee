package grabber

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/tube-grabber/internal/constants"
)

// writeExecutable creates an executable stub named name in dir.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), constants.DefaultFolderPermissions))

	return path
}

// TestConverterLocator_ConfiguredPath tests locating ffmpeg by its configured path.
func TestConverterLocator_ConfiguredPath(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("executable bit is not used on Windows")
	}

	path := writeExecutable(t, t.TempDir(), "my-ffmpeg")

	located, err := NewConverterLocator("  " + path + "  ").Locate()
	require.NoError(t, err)
	assert.Equal(t, path, located)

	_, err = NewConverterLocator(filepath.Join(t.TempDir(), "missing")).Locate()
	require.ErrorIs(t, err, ErrConverterNotFound)
}

// TestConverterLocator_PathLookup tests locating ffmpeg in PATH.
func TestConverterLocator_PathLookup(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit is not used on Windows")
	}

	dir := t.TempDir()
	t.Setenv("PATH", dir)

	_, err := NewConverterLocator("").Locate()
	require.ErrorIs(t, err, ErrConverterNotFound)

	path := writeExecutable(t, dir, "ffmpeg")

	located, err := NewConverterLocator("").Locate()
	require.NoError(t, err)
	assert.Equal(t, path, located)
}
