package traceio

import "errors"

// Sentinel errors for the Invariant/I-O/Format error kinds named by
// the error handling design: begin/finish pairing mistakes are
// programming errors reported to the caller, not retried.
var (
	// ErrAlreadyWriting is returned by Begin when a sink is opened
	// a second time without an intervening Close.
	ErrAlreadyWriting = errors.New("traceio: writer already open")

	// ErrNotWriting is returned by Close/Flush when called on a
	// Writer that has already been closed.
	ErrNotWriting = errors.New("traceio: writer not open")

	// ErrTruncated is returned by the reader when a streaming
	// binary trace ends mid-block. The events decoded from
	// complete blocks are still returned alongside this error.
	ErrTruncated = errors.New("traceio: trace truncated at last block")

	// ErrUnknownFormat is returned when a format tag does not
	// match any recognized wire encoding.
	ErrUnknownFormat = errors.New("traceio: unknown trace format")
)
