package traceio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// magicV0 tags a BinaryV0 stream so the reader can tell it apart from
// the streaming Binary container, which instead starts with a zstd
// frame magic.
var magicV0 = [4]byte{'T', 'R', 'V', '0'}

// EncodeBinaryV0 writes events as the legacy non-streaming binary
// framing: a 4-byte magic, then a length-prefixed sequence of
// records, each record being a tag byte plus its fields.
func EncodeBinaryV0(w io.Writer, events []tracetypes.LowLevelEvent) error {
	if _, err := w.Write(magicV0[:]); err != nil {
		return fmt.Errorf("traceio: write binary magic: %w", err)
	}
	for i, e := range events {
		body, err := encodeEventBody(e)
		if err != nil {
			return fmt.Errorf("traceio: encode event %d: %w", i, err)
		}
		if err := writeRecord(w, body); err != nil {
			return fmt.Errorf("traceio: write event %d: %w", i, err)
		}
	}
	return nil
}

// DecodeBinaryV0 parses the BinaryV0 form back into an event vector.
func DecodeBinaryV0(r io.Reader) ([]tracetypes.LowLevelEvent, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("traceio: read binary magic: %w", err)
	}
	if magic != magicV0 {
		return nil, fmt.Errorf("traceio: bad binary magic %q", magic)
	}
	var events []tracetypes.LowLevelEvent
	for {
		body, err := readRecord(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return events, fmt.Errorf("traceio: read record %d: %w", len(events), err)
		}
		e, err := decodeEventBody(&bufDecoder{buf: body})
		if err != nil {
			return events, fmt.Errorf("traceio: decode record %d: %w", len(events), err)
		}
		events = append(events, e)
	}
	return events, nil
}

// writeRecord length-prefixes body with a uint32, little-endian,
// mirroring perffile's recordHeader framing of perf.data records.
func writeRecord(w io.Writer, body []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// readRecord reads one length-prefixed record, returning io.EOF only
// when the stream ends exactly on a record boundary. A length prefix
// with no following body of the promised size is a truncation, not a
// clean end of stream.
func readRecord(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: partial record length prefix", ErrTruncated)
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: partial record body", ErrTruncated)
		}
		return nil, err
	}
	return body, nil
}
