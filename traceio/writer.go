package traceio

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// openDirs tracks directories that currently have a Writer open on
// them, so that Begin can refuse a second concurrent writer on the
// same directory instead of letting two sinks race over the same
// files.
var (
	openDirsMu sync.Mutex
	openDirs   = map[string]bool{}
)

// eventSink is the one thing that differs between the buffered and
// the streaming writer. Everything else — the interning tables, the
// Register* operation surface — is shared, so swapping sinks can
// never desynchronize declarations from the events that use them.
type eventSink interface {
	addEvent(tracetypes.LowLevelEvent) error
	flush() error
	close() error
}

// Writer is the capability set described by the event emission API:
// every Register*/Assign/Drop*/AddEvent operation a trace producer
// needs, backed by either a buffered or a streaming eventSink.
//
// A Writer is not safe for concurrent use. The caller is responsible
// for serializing calls, typically with one Writer per thread or an
// external mutex, exactly as perfsession.Session assumes a single
// goroutine drives Update.
type Writer struct {
	dir    string
	dirKey string
	format Format
	meta   Metadata
	tables *internTables
	sink   eventSink
	err    error
	step   tracetypes.StepId
}

// Begin opens a trace directory for writing in the given format and
// returns a ready-to-use Writer. It allocates the synthetic top-level
// function (FunctionId 0) before returning, per the reserved-constant
// contract. Calling Begin again on the same directory before the
// first Writer's Close returns ErrAlreadyWriting.
func Begin(dir string, format Format, meta Metadata) (*Writer, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("traceio: resolve trace dir: %w", err)
	}

	openDirsMu.Lock()
	if openDirs[key] {
		openDirsMu.Unlock()
		return nil, ErrAlreadyWriting
	}
	openDirs[key] = true
	openDirsMu.Unlock()

	sink, err := newEventSink(dir, format)
	if err != nil {
		openDirsMu.Lock()
		delete(openDirs, key)
		openDirsMu.Unlock()
		return nil, fmt.Errorf("traceio: begin writing trace events: %w", err)
	}
	w := &Writer{dir: dir, dirKey: key, format: format, meta: meta, sink: sink}
	w.tables = newInternTables(w.emit)
	w.tables.reserveTopLevelFunction()
	return w, w.err
}

func (w *Writer) emit(e tracetypes.LowLevelEvent) {
	if w.err != nil {
		return
	}
	if err := w.sink.addEvent(e); err != nil {
		w.err = fmt.Errorf("traceio: write event: %w", err)
	}
}

// Flush forces any buffered data through to the underlying sink. For
// the streaming writer this closes the current compression block.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.sink == nil {
		return ErrNotWriting
	}
	if err := w.sink.flush(); err != nil {
		return fmt.Errorf("traceio: flush: %w", err)
	}
	return nil
}

// Close finishes writing the trace: it flushes and closes the events
// sink, then writes the paths and metadata sidecars. It is the
// counterpart of every Begin; calling it twice is a programming error
// reported as ErrNotWriting the second time.
func (w *Writer) Close() error {
	if w.sink == nil {
		return ErrNotWriting
	}
	sink := w.sink
	w.sink = nil
	openDirsMu.Lock()
	delete(openDirs, w.dirKey)
	openDirsMu.Unlock()
	if err := sink.close(); err != nil {
		return fmt.Errorf("traceio: finish writing trace events: %w", err)
	}
	if w.err != nil {
		return w.err
	}
	if err := WritePaths(w.dir, w.tables.pathList); err != nil {
		return err
	}
	if err := WriteMetadata(w.dir, w.meta); err != nil {
		return err
	}
	return nil
}

// RegisterPath declares path if unseen. Idempotent.
func (w *Writer) RegisterPath(path string) error {
	if w.err != nil {
		return w.err
	}
	w.tables.ensurePathID(path)
	return w.err
}

// RegisterFunction declares (name, path, line) if unseen. Idempotent.
func (w *Writer) RegisterFunction(name, path string, line int64) error {
	if w.err != nil {
		return w.err
	}
	w.tables.ensureFunctionID(name, path, line)
	return w.err
}

// RegisterType declares (kind, langType) if unseen. Idempotent.
func (w *Writer) RegisterType(kind tracetypes.TypeKind, langType string) error {
	if w.err != nil {
		return w.err
	}
	w.tables.ensureTypeID(kind, langType)
	return w.err
}

// RegisterRawType declares rec, keyed by the whole record, if unseen.
func (w *Writer) RegisterRawType(rec tracetypes.TypeRecord) error {
	if w.err != nil {
		return w.err
	}
	w.tables.ensureRawTypeID(rec)
	return w.err
}

// RegisterStep appends a Step event at path:line, declaring path
// first if needed.
func (w *Writer) RegisterStep(path string, line int64) error {
	if w.err != nil {
		return w.err
	}
	pathId := w.tables.ensurePathID(path)
	w.step++
	w.emit(tracetypes.StepEvent{PathId: pathId, Line: line})
	return w.err
}

// RegisterCall appends a Call event invoking functionId with args.
func (w *Writer) RegisterCall(functionId tracetypes.FunctionId, args []tracetypes.FullValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.CallEvent{FunctionId: functionId, Args: args})
	return w.err
}

// RegisterReturn appends a Return event.
func (w *Writer) RegisterReturn(value tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.ReturnEvent{ReturnValue: value})
	return w.err
}

// RegisterSpecialEvent appends an Event record and returns the
// ordinal of the emitted step, for later back-reference. metadata is
// always the empty string: no producer populates it (see the design
// note on Event.metadata).
func (w *Writer) RegisterSpecialEvent(kind tracetypes.EventLogKind, content string) (tracetypes.StepId, error) {
	if w.err != nil {
		return 0, w.err
	}
	id := w.step
	w.step++
	w.emit(tracetypes.EventLogEvent{EventKind: kind, Metadata: "", Content: content})
	return id, w.err
}

// RegisterAsm appends a raw assembly instruction listing.
func (w *Writer) RegisterAsm(instructions []string) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.AsmEvent{Instructions: instructions})
	return w.err
}

// RegisterVariableWithFullValue ensures name's variable id and
// appends a Value event for it.
func (w *Writer) RegisterVariableWithFullValue(name string, value tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	id := w.tables.ensureVariableID(name)
	w.emit(tracetypes.ValueEvent{VariableId: id, Value: value})
	return w.err
}

// RegisterVariableName ensures name's variable id without emitting a
// Value event, the split form of RegisterVariableWithFullValue.
func (w *Writer) RegisterVariableName(name string) (tracetypes.VariableId, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.tables.ensureVariableID(name), w.err
}

// RegisterFullValue appends a Value event for an already-declared
// variable id, the other half of the split form.
func (w *Writer) RegisterFullValue(variableId tracetypes.VariableId, value tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.ValueEvent{VariableId: variableId, Value: value})
	return w.err
}

// RegisterCompoundValue appends a CompoundValue event recording the
// current value at place.
func (w *Writer) RegisterCompoundValue(place tracetypes.Place, value tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.CompoundValueEvent{Place: place, Value: value})
	return w.err
}

// RegisterCellValue appends a CellValue event recording the current
// value behind a Cell at place.
func (w *Writer) RegisterCellValue(place tracetypes.Place, value tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.CellValueEvent{Place: place, Value: value})
	return w.err
}

// AssignCompoundItem appends an AssignCompoundItem event: place's
// element at index now refers to itemPlace.
func (w *Writer) AssignCompoundItem(place tracetypes.Place, index int64, itemPlace tracetypes.Place) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.AssignCompoundItemEvent{Place: place, Index: index, ItemPlace: itemPlace})
	return w.err
}

// AssignCell appends an AssignCell event: place's cell now holds
// newValue.
func (w *Writer) AssignCell(place tracetypes.Place, newValue tracetypes.ValueRecord) error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.AssignCellEvent{Place: place, NewValue: newValue})
	return w.err
}

// BindVariable ensures name's variable id and appends a BindVariable
// event binding it to place.
func (w *Writer) BindVariable(name string, place tracetypes.Place) error {
	if w.err != nil {
		return w.err
	}
	id := w.tables.ensureVariableID(name)
	w.emit(tracetypes.BindVariableEvent{VariableId: id, Place: place})
	return w.err
}

// RegisterVariable ensures name's variable id and appends a
// VariableCell event binding it to place.
func (w *Writer) RegisterVariable(name string, place tracetypes.Place) error {
	if w.err != nil {
		return w.err
	}
	id := w.tables.ensureVariableID(name)
	w.emit(tracetypes.VariableCellEvent{VariableId: id, Place: place})
	return w.err
}

// DropVariable ensures name's variable id and appends a
// DropVariable event.
func (w *Writer) DropVariable(name string) error {
	if w.err != nil {
		return w.err
	}
	id := w.tables.ensureVariableID(name)
	w.emit(tracetypes.DropVariableEvent{VariableId: id})
	return w.err
}

// DropVariables ensures each name's variable id and appends one
// DropVariables event for all of them.
func (w *Writer) DropVariables(names []string) error {
	if w.err != nil {
		return w.err
	}
	ids := make([]tracetypes.VariableId, len(names))
	for i, n := range names {
		ids[i] = w.tables.ensureVariableID(n)
	}
	w.emit(tracetypes.DropVariablesEvent{VariableIds: ids})
	return w.err
}

// Assign ensures name's variable id and appends an Assignment event
// recording a read of rvalue into it.
func (w *Writer) Assign(name string, rvalue tracetypes.RValue, passBy tracetypes.PassBy) error {
	if w.err != nil {
		return w.err
	}
	id := w.tables.ensureVariableID(name)
	w.emit(tracetypes.AssignmentEvent{To: id, PassBy: passBy, From: rvalue})
	return w.err
}

// SimpleRValue ensures name's variable id and returns the RValue
// reading it.
func (w *Writer) SimpleRValue(name string) (tracetypes.RValue, error) {
	if w.err != nil {
		return nil, w.err
	}
	return tracetypes.SimpleRValue{VariableId: w.tables.ensureVariableID(name)}, w.err
}

// CompoundRValue ensures each name's variable id and returns the
// RValue reading all of them together.
func (w *Writer) CompoundRValue(names []string) (tracetypes.RValue, error) {
	if w.err != nil {
		return nil, w.err
	}
	ids := make([]tracetypes.VariableId, len(names))
	for i, n := range names {
		ids[i] = w.tables.ensureVariableID(n)
	}
	return tracetypes.CompoundRValue{VariableIds: ids}, w.err
}

// DropLastStep appends a forward marker cancelling the immediately
// preceding Step. It never removes bytes already written.
func (w *Writer) DropLastStep() error {
	if w.err != nil {
		return w.err
	}
	w.emit(tracetypes.DropLastStepEvent{})
	return w.err
}

// AddEvent is the raw escape hatch: it appends e as-is, without
// allocating any ids. The caller is responsible for upholding the
// declaration-before-use invariants.
func (w *Writer) AddEvent(e tracetypes.LowLevelEvent) error {
	if w.err != nil {
		return w.err
	}
	w.emit(e)
	return w.err
}

// AppendEvents calls AddEvent for each event in order, stopping at
// the first error.
func (w *Writer) AppendEvents(events []tracetypes.LowLevelEvent) error {
	for _, e := range events {
		if err := w.AddEvent(e); err != nil {
			return err
		}
	}
	return nil
}
