package traceio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectFormatJSON(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	require.NoError(t, w.RegisterStep("a.rs", 1))
	require.NoError(t, w.Close())

	format, path, err := DetectFormat(dir)
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)
	require.Equal(t, filepath.Join(dir, "trace.json"), path)
}

func TestDetectFormatBinaryV0(t *testing.T) {
	w, dir := mustBegin(t, FormatBinaryV0)
	require.NoError(t, w.RegisterStep("a.rs", 1))
	require.NoError(t, w.Close())

	format, _, err := DetectFormat(dir)
	require.NoError(t, err)
	require.Equal(t, FormatBinaryV0, format)
}

func TestDetectFormatStreamingBinary(t *testing.T) {
	w, dir := mustBegin(t, FormatBinary)
	require.NoError(t, w.RegisterStep("a.rs", 1))
	require.NoError(t, w.Close())

	format, _, err := DetectFormat(dir)
	require.NoError(t, err)
	require.Equal(t, FormatBinary, format)
}

func TestDetectFormatMissing(t *testing.T) {
	dir := t.TempDir()
	_, _, err := DetectFormat(dir)
	require.Error(t, err)
}
