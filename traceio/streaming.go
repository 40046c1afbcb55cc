package traceio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// streamingEventSink is the writer described by spec section 4.4: it
// encodes each event the moment it is appended and pushes the framed
// record straight into a zstd-compressed container. No in-memory
// event buffer exists beyond the one record currently being encoded.
//
// flush closes the zstd encoder's current block without ending the
// stream, so a reader opening the file up to that point can decode
// every event written so far. This is what makes the container
// recoverable after a crash between flushes: events in the block that
// was still open when the process died are lost, but every earlier
// flushed block decodes cleanly.
type streamingEventSink struct {
	file *os.File
	zw   *zstd.Encoder
}

func newStreamingEventSink(dir string, format Format) (*streamingEventSink, error) {
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("traceio: create trace dir: %w", err)
		}
	}
	f, err := os.Create(filepath.Join(dir, format.EventsFileName()))
	if err != nil {
		return nil, fmt.Errorf("traceio: open events file: %w", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("traceio: open zstd encoder: %w", err)
	}
	return &streamingEventSink{file: f, zw: zw}, nil
}

func (s *streamingEventSink) addEvent(e tracetypes.LowLevelEvent) error {
	if s.zw == nil {
		return ErrNotWriting
	}
	body, err := encodeEventBody(e)
	if err != nil {
		return err
	}
	return writeRecord(s.zw, body)
}

func (s *streamingEventSink) flush() error {
	if s.zw == nil {
		return ErrNotWriting
	}
	return s.zw.Flush()
}

func (s *streamingEventSink) close() error {
	if s.zw == nil {
		return ErrNotWriting
	}
	zw := s.zw
	s.zw = nil
	if err := zw.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("traceio: close zstd encoder: %w", err)
	}
	return s.file.Close()
}

// DecodeBinaryStreaming decodes a streaming Binary trace, returning
// every event decoded from complete blocks. If the final block was
// still open when the file was produced (a crash mid-trace), it
// returns ErrTruncated alongside the events recovered from the
// preceding complete blocks, per the streaming prefix property.
func DecodeBinaryStreaming(path string) ([]tracetypes.LowLevelEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("traceio: open trace file: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("traceio: open zstd decoder: %w", err)
	}
	defer zr.Close()

	var events []tracetypes.LowLevelEvent
	for {
		body, err := readRecord(zr)
		if err == nil {
			e, derr := decodeEventBody(&bufDecoder{buf: body})
			if derr != nil {
				return events, fmt.Errorf("traceio: decode record %d: %w", len(events), derr)
			}
			events = append(events, e)
			continue
		}
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		// Any other read/decompress error past a clean EOF means
		// the stream ends mid-block: return what decoded cleanly
		// plus a truncation indicator, per the streaming prefix
		// property.
		return events, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
}
