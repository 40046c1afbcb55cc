package traceio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// LoadTraceEvents parses the events file at path under the given
// format and returns the event vector. It performs no validation of
// cross-references; callers get back exactly what was found on the
// wire, truncation aside.
//
// For FormatBinary (the streaming container) a truncated trailing
// block still yields every event from the complete blocks that
// precede it, alongside ErrTruncated.
func LoadTraceEvents(path string, format Format) ([]tracetypes.LowLevelEvent, error) {
	switch format {
	case FormatJSON:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("traceio: open trace file: %w", err)
		}
		defer f.Close()
		return DecodeJSON(f)

	case FormatBinaryV0:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("traceio: open trace file: %w", err)
		}
		defer f.Close()
		return DecodeBinaryV0(f)

	case FormatBinary:
		return DecodeBinaryStreaming(path)

	default:
		return nil, ErrUnknownFormat
	}
}

// DetectFormat inspects a trace directory and returns the format of
// whichever events file is present, preferring trace.json. It exists
// for tooling (cmd/tracedump) that wants to open a trace without
// being told in advance which format produced it; the library-level
// LoadTraceEvents always takes an explicit format, per the
// construction API in section 6.4.
func DetectFormat(dir string) (Format, string, error) {
	jsonPath := filepath.Join(dir, "trace.json")
	if _, err := os.Stat(jsonPath); err == nil {
		return FormatJSON, jsonPath, nil
	}
	binPath := filepath.Join(dir, "trace.bin")
	if _, err := os.Stat(binPath); err == nil {
		format, err := detectBinaryFormat(binPath)
		return format, binPath, err
	}
	return 0, "", fmt.Errorf("traceio: no trace.json or trace.bin in %s", dir)
}

// detectBinaryFormat distinguishes BinaryV0 from the streaming
// Binary container by its magic: BinaryV0 starts with "TRV0", the
// streaming form starts with a zstd frame magic.
func detectBinaryFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("traceio: open trace file: %w", err)
	}
	defer f.Close()
	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return 0, fmt.Errorf("traceio: read trace magic: %w", err)
	}
	if magic == magicV0 {
		return FormatBinaryV0, nil
	}
	return FormatBinary, nil
}
