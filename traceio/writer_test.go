package traceio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

func mustBegin(t *testing.T, format Format) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := Begin(dir, format, Metadata{Workdir: "/tmp", Program: "prog", Args: []string{"a"}})
	require.NoError(t, err)
	return w, dir
}

// TestHelloStep is the "hello step" scenario from the testable
// properties: a single path registration followed by a step at that
// path declares the path first, then the step.
func TestHelloStep(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	require.NoError(t, w.RegisterStep("main.rs", 1))
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []tracetypes.LowLevelEvent{
		tracetypes.PathEvent{Path: "main.rs"},
		tracetypes.StepEvent{PathId: 0, Line: 1},
	}, events)
}

// TestVariableWithIntValue is the "variable with int value" scenario:
// ensuring the variable and the type before the Value event, with
// TypeId 0 staying reserved for None.
func TestVariableWithIntValue(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	vid, err := w.RegisterVariableName("x")
	require.NoError(t, err)
	typeId := w.tables.ensureTypeID(tracetypes.TypeKindInt, "i32")
	require.NoError(t, w.RegisterFullValue(vid, tracetypes.IntValue{I: 42, TypeId: typeId}))
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []tracetypes.LowLevelEvent{
		tracetypes.VariableNameEvent{Name: "x"},
		tracetypes.TypeEvent{Kind_: tracetypes.TypeKindInt, LangType: "i32", SpecificInfo: tracetypes.NoneTypeInfo{}},
		tracetypes.ValueEvent{VariableId: 0, Value: tracetypes.IntValue{I: 42, TypeId: 1}},
	}, events)
}

// TestCallAndReturn is the "call + return" scenario: the top-level
// function occupies id 0 implicitly, so the first user function gets
// id 1.
func TestCallAndReturn(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	fid := w.tables.ensureFunctionID("f", "main.rs", 3)
	require.Equal(t, tracetypes.FunctionId(1), fid)
	require.NoError(t, w.RegisterCall(fid, nil))
	require.NoError(t, w.RegisterReturn(tracetypes.NoneRecord))
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, tracetypes.CallEvent{FunctionId: 1, Args: []tracetypes.FullValueRecord{}}, events[len(events)-2])
	require.Equal(t, tracetypes.ReturnEvent{ReturnValue: tracetypes.NoneValue{TypeId: 0}}, events[len(events)-1])
}

// TestDropLastStep checks that the marker is appended after the Step
// it cancels, and that the Step itself is never removed.
func TestDropLastStep(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	require.NoError(t, w.RegisterStep("main.rs", 5))
	require.NoError(t, w.DropLastStep())
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)
	require.Len(t, events, 3) // Path, Step, DropLastStep
	require.IsType(t, tracetypes.StepEvent{}, events[1])
	require.Equal(t, tracetypes.DropLastStepEvent{}, events[2])
}

// TestCompoundValueGraph is the "compound value graph" scenario: a
// sequence registered at a place, one of its items reassigned to a
// different place, and that place's cell reassigned in turn.
func TestCompoundValueGraph(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	seqType := w.tables.ensureTypeID(tracetypes.TypeKindSeq, "[]i32")
	require.NoError(t, w.RegisterCompoundValue(10, tracetypes.SequenceValue{
		Elements: []tracetypes.ValueRecord{tracetypes.CellValue{Place: 11}},
		IsSlice:  false,
		TypeId:   seqType,
	}))
	require.NoError(t, w.AssignCompoundItem(10, 0, 11))
	intType := w.tables.ensureTypeID(tracetypes.TypeKindInt, "i32")
	require.NoError(t, w.AssignCell(11, tracetypes.IntValue{I: 7, TypeId: intType}))
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)

	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Kind())
	}
	require.Equal(t, []string{
		"Type", "CompoundValue", "AssignCompoundItem", "Type", "AssignCell",
	}, kinds)

	acv, ok := events[4].(tracetypes.AssignCellEvent)
	require.True(t, ok)
	require.Equal(t, tracetypes.Place(11), acv.Place)
	require.Equal(t, tracetypes.IntValue{I: 7, TypeId: intType}, acv.NewValue)
}

func TestCloseTwiceReturnsNotWriting(t *testing.T) {
	w, _ := mustBegin(t, FormatJSON)
	require.NoError(t, w.Close())
	// A second Close is a programming error: begin/finish must
	// pair exactly once.
	require.ErrorIs(t, w.Close(), ErrNotWriting)
}

func TestBeginTwiceOnSameDirectory(t *testing.T) {
	dir := t.TempDir()
	w1, err := Begin(dir, FormatJSON, Metadata{})
	require.NoError(t, err)

	_, err = Begin(dir, FormatJSON, Metadata{})
	require.ErrorIs(t, err, ErrAlreadyWriting)

	require.NoError(t, w1.Close())

	w2, err := Begin(dir, FormatJSON, Metadata{})
	require.NoError(t, err)
	require.NoError(t, w2.Close())
}

func TestEnsureIdempotent(t *testing.T) {
	w, _ := mustBegin(t, FormatJSON)
	id1 := w.tables.ensurePathID("a.rs")
	id2 := w.tables.ensurePathID("a.rs")
	require.Equal(t, id1, id2)
	require.Len(t, w.tables.pathList, 1)
}

func TestIdentifierDensity(t *testing.T) {
	w, _ := mustBegin(t, FormatJSON)
	for i := 0; i < 5; i++ {
		w.tables.ensureVariableID(letter(i))
	}
	for i, name := range w.tables.varList {
		require.Equal(t, tracetypes.VariableId(i), w.tables.ensureVariableID(name))
	}
}

func letter(i int) string {
	return string(rune('a' + i))
}
