package traceio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := Metadata{Workdir: "/srv/app", Program: "main.rs", Args: []string{"--flag", "value"}}
	require.NoError(t, WriteMetadata(dir, m))

	loaded, err := LoadMetadata(dir)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

func TestMetadataYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workdir: /srv/app\nprogram: main.rs\nargs: [\"a\", \"b\"]\n"), 0o644))

	m, err := LoadMetadataYAML(path)
	require.NoError(t, err)
	require.Equal(t, Metadata{Workdir: "/srv/app", Program: "main.rs", Args: []string{"a", "b"}}, m)
}

func TestPathsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths := []string{"a.rs", "b.rs", "c.rs"}
	require.NoError(t, WritePaths(dir, paths))

	loaded, err := LoadPaths(dir)
	require.NoError(t, err)
	require.Equal(t, paths, loaded)
}

func TestWritePathsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePaths(dir, nil))

	loaded, err := LoadPaths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{}, loaded)
}
