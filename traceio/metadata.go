package traceio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Metadata is the trace_metadata.json sidecar: fixed at Writer
// construction and emitted once at Close.
type Metadata struct {
	Workdir string   `json:"workdir" yaml:"workdir"`
	Program string   `json:"program" yaml:"program"`
	Args    []string `json:"args" yaml:"args"`
}

// WriteMetadata writes m as trace_metadata.json under dir.
func WriteMetadata(dir string, m Metadata) error {
	f, err := os.Create(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return fmt.Errorf("traceio: open metadata file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("traceio: write metadata: %w", err)
	}
	return nil
}

// LoadMetadata reads trace_metadata.json from dir.
func LoadMetadata(dir string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return m, fmt.Errorf("traceio: read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("traceio: parse metadata: %w", err)
	}
	return m, nil
}

// LoadMetadataYAML loads a {workdir, program, args} document from a
// YAML file, for tooling that wants to configure a trace session
// before any JSON sidecar exists (e.g. a static launch config checked
// into a repo alongside the instrumented program).
func LoadMetadataYAML(path string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("traceio: read yaml metadata: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("traceio: parse yaml metadata: %w", err)
	}
	return m, nil
}

// WritePaths writes the path table, in declaration order, as a flat
// JSON array of strings (trace_paths.json).
func WritePaths(dir string, paths []string) error {
	f, err := os.Create(filepath.Join(dir, PathsFileName))
	if err != nil {
		return fmt.Errorf("traceio: open paths file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if paths == nil {
		paths = []string{}
	}
	if err := enc.Encode(paths); err != nil {
		return fmt.Errorf("traceio: write paths: %w", err)
	}
	return nil
}

// LoadPaths reads trace_paths.json from dir.
func LoadPaths(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, PathsFileName))
	if err != nil {
		return nil, fmt.Errorf("traceio: read paths: %w", err)
	}
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("traceio: parse paths: %w", err)
	}
	return paths, nil
}
