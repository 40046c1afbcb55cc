package traceio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// sampleStream exercises every event variant and every value/type-info
// variant at least once, so a round-trip test that passes on it
// exercises the whole codec surface.
func sampleStream() []tracetypes.LowLevelEvent {
	return []tracetypes.LowLevelEvent{
		tracetypes.PathEvent{Path: "main.rs"},
		tracetypes.FunctionEvent{PathId: 0, Line: 3, Name: "f"},
		tracetypes.VariableNameEvent{Name: "x"},
		tracetypes.TypeEvent{Kind_: tracetypes.TypeKindInt, LangType: "i32", SpecificInfo: tracetypes.NoneTypeInfo{}},
		tracetypes.TypeEvent{
			Kind_:    tracetypes.TypeKindStruct,
			LangType: "Point",
			SpecificInfo: tracetypes.StructTypeInfo{
				Fields: []tracetypes.StructField{{Name: "x", TypeId: 1}, {Name: "y", TypeId: 1}},
			},
		},
		tracetypes.TypeEvent{
			Kind_:        tracetypes.TypeKindPointer,
			LangType:     "*i32",
			SpecificInfo: tracetypes.PointerTypeInfo{DereferenceTypeId: 1},
		},
		tracetypes.StepEvent{PathId: 0, Line: 1},
		tracetypes.CallEvent{FunctionId: 1, Args: []tracetypes.FullValueRecord{
			{VariableId: 0, Value: tracetypes.IntValue{I: 42, TypeId: 1}},
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.Int128Value{I: "170141183460469231731687303715884105727", TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.FloatValue{F: 3.5, TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.BoolValue{B: true, TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.StringValue{Text: "hi", TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.SequenceValue{
			Elements: []tracetypes.ValueRecord{tracetypes.IntValue{I: 1, TypeId: 1}, tracetypes.CellValue{Place: 7}},
			IsSlice:  true,
			TypeId:   1,
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.TupleValue{
			Elements: []tracetypes.ValueRecord{tracetypes.IntValue{I: 1, TypeId: 1}, tracetypes.BoolValue{B: false, TypeId: 1}},
			TypeId:   1,
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.StructValue{
			FieldValues: []tracetypes.ValueRecord{tracetypes.IntValue{I: 1, TypeId: 1}, tracetypes.IntValue{I: 2, TypeId: 1}},
			TypeId:      1,
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.VariantValue{
			Discriminator: "Some",
			Contents:      tracetypes.IntValue{I: 9, TypeId: 1},
			TypeId:        1,
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.ReferenceValue{
			Dereferenced: tracetypes.IntValue{I: 9, TypeId: 1},
			Address:      0xdeadbeef,
			Mutable:      true,
			TypeId:       1,
		}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.RawValue{R: "0xFF", TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.ErrorValue{Msg: "boom", TypeId: 1}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.NoneValue{TypeId: 0}},
		tracetypes.ReturnEvent{ReturnValue: tracetypes.NoneRecord},
		tracetypes.EventLogEvent{EventKind: tracetypes.EventLogWrite, Metadata: "", Content: "payload"},
		tracetypes.AsmEvent{Instructions: []string{"mov eax, 1", "ret"}},
		tracetypes.BindVariableEvent{VariableId: 0, Place: 3},
		tracetypes.AssignmentEvent{To: 0, PassBy: tracetypes.PassByValue, From: tracetypes.SimpleRValue{VariableId: 0}},
		tracetypes.AssignmentEvent{To: 0, PassBy: tracetypes.PassByReference, From: tracetypes.CompoundRValue{VariableIds: []tracetypes.VariableId{0, 1}}},
		tracetypes.DropVariablesEvent{VariableIds: []tracetypes.VariableId{0}},
		tracetypes.CompoundValueEvent{Place: 10, Value: tracetypes.SequenceValue{Elements: []tracetypes.ValueRecord{}, TypeId: 1}},
		tracetypes.CellValueEvent{Place: 11, Value: tracetypes.IntValue{I: 0, TypeId: 1}},
		tracetypes.AssignCompoundItemEvent{Place: 10, Index: 0, ItemPlace: 11},
		tracetypes.AssignCellEvent{Place: 11, NewValue: tracetypes.IntValue{I: 7, TypeId: 1}},
		tracetypes.VariableCellEvent{VariableId: 1, Place: 12},
		tracetypes.DropVariableEvent{VariableId: 1},
		tracetypes.DropLastStepEvent{},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	events := sampleStream()
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, events))
	decoded, err := DecodeJSON(&buf)
	require.NoError(t, err)
	require.Equal(t, events, decoded)
}

func TestBinaryV0RoundTrip(t *testing.T) {
	events := sampleStream()
	var buf bytes.Buffer
	require.NoError(t, EncodeBinaryV0(&buf, events))
	decoded, err := DecodeBinaryV0(&buf)
	require.NoError(t, err)
	require.Equal(t, events, decoded)
}

// TestCrossFormatEquivalence is the cross-format-equivalence property:
// decoding the binary form and decoding the JSON form of the same
// event stream must yield identical event vectors.
func TestCrossFormatEquivalence(t *testing.T) {
	events := sampleStream()

	var jsonBuf bytes.Buffer
	require.NoError(t, EncodeJSON(&jsonBuf, events))
	fromJSON, err := DecodeJSON(&jsonBuf)
	require.NoError(t, err)

	var binBuf bytes.Buffer
	require.NoError(t, EncodeBinaryV0(&binBuf, events))
	fromBinary, err := DecodeBinaryV0(&binBuf)
	require.NoError(t, err)

	require.Equal(t, fromJSON, fromBinary)
}

func TestDecodeBinaryV0RejectsBadMagic(t *testing.T) {
	_, err := DecodeBinaryV0(bytes.NewReader([]byte("XXXX")))
	require.Error(t, err)
}

// TestStreamingTruncationRecovery writes 350 events to the streaming
// binary container, flushing every 100, then simulates a crash after
// event 350 by abandoning the zstd encoder without a final flush or
// close. Everything up to the last completed flush boundary (event
// 300) must still be recoverable, alongside a truncation signal.
func TestStreamingTruncationRecovery(t *testing.T) {
	dir := t.TempDir()
	sink, err := newStreamingEventSink(dir, FormatBinary)
	require.NoError(t, err)

	for i := 1; i <= 350; i++ {
		require.NoError(t, sink.addEvent(tracetypes.StepEvent{PathId: 0, Line: int64(i)}))
		if i%100 == 0 {
			require.NoError(t, sink.flush())
		}
	}
	// Simulate a crash: drop the file handle without closing the
	// zstd encoder, so the in-progress block past the last flush
	// never reaches disk.
	require.NoError(t, sink.file.Close())

	events, err := DecodeBinaryStreaming(filepath.Join(dir, "trace.bin"))
	require.ErrorIs(t, err, ErrTruncated)
	require.GreaterOrEqual(t, len(events), 300)
	require.LessOrEqual(t, len(events), 399)
	for i, e := range events {
		step, ok := e.(tracetypes.StepEvent)
		require.True(t, ok)
		require.Equal(t, int64(i+1), step.Line)
	}
}
