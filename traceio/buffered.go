package traceio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// bufferedEventSink holds the whole event stream in memory and
// serializes it in a single pass on close, either as JSON or as
// BinaryV0. This is the writer described by spec section 4.3.
type bufferedEventSink struct {
	dir    string
	format Format
	events []tracetypes.LowLevelEvent
	opened bool
}

func newBufferedEventSink(dir string, format Format) (*bufferedEventSink, error) {
	if _, err := os.Stat(dir); err != nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("traceio: create trace dir: %w", err)
		}
	}
	return &bufferedEventSink{dir: dir, format: format, opened: true}, nil
}

func (s *bufferedEventSink) addEvent(e tracetypes.LowLevelEvent) error {
	if !s.opened {
		return ErrNotWriting
	}
	s.events = append(s.events, e)
	return nil
}

// flush is a no-op for the buffered sink: there is nothing to push
// out early, the whole stream is serialized at close.
func (s *bufferedEventSink) flush() error {
	if !s.opened {
		return ErrNotWriting
	}
	return nil
}

func (s *bufferedEventSink) close() error {
	if !s.opened {
		return ErrNotWriting
	}
	s.opened = false

	path := filepath.Join(s.dir, s.format.EventsFileName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("traceio: open events file: %w", err)
	}
	defer f.Close()

	switch s.format {
	case FormatJSON:
		return EncodeJSON(f, s.events)
	case FormatBinaryV0:
		return EncodeBinaryV0(f, s.events)
	default:
		return fmt.Errorf("%w: %v used with buffered writer", ErrUnknownFormat, s.format)
	}
}

// newEventSink is the factory by format tag described in section 6.4:
// it returns the sink appropriate to format, opened and ready to
// accept events.
func newEventSink(dir string, format Format) (eventSink, error) {
	switch format {
	case FormatJSON, FormatBinaryV0:
		return newBufferedEventSink(dir, format)
	case FormatBinary:
		return newStreamingEventSink(dir, format)
	default:
		return nil, ErrUnknownFormat
	}
}
