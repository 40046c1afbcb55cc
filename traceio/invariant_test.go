package traceio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// declared tracks which identifiers have been declared so far while
// walking a prefix of the stream, for the declaration-before-use
// check below.
type declared struct {
	paths     map[tracetypes.PathId]bool
	functions map[tracetypes.FunctionId]bool
	variables map[tracetypes.VariableId]bool
	types     map[tracetypes.TypeId]bool
}

func newDeclared() *declared {
	return &declared{
		paths:     map[tracetypes.PathId]bool{},
		functions: map[tracetypes.FunctionId]bool{tracetypes.TopLevelFunctionID: true},
		variables: map[tracetypes.VariableId]bool{},
		types:     map[tracetypes.TypeId]bool{tracetypes.NoneTypeID: true},
	}
}

// requireDeclared walks events in order and fails the test the first
// time an event uses a path, function or variable id that no earlier
// Path/Function/VariableName event (or the reserved constants) has
// declared yet. Type events are counted, but the type ids carried
// inside value records and the variable ids inside an Assignment's
// RValue are not checked.
func requireDeclared(t *testing.T, events []tracetypes.LowLevelEvent) {
	t.Helper()
	d := newDeclared()
	for i, e := range events {
		switch x := e.(type) {
		case tracetypes.PathEvent:
			d.paths[tracetypes.PathId(len(d.paths))] = true
		case tracetypes.FunctionEvent:
			require.True(t, d.paths[x.PathId], "event %d: Function refers to undeclared path %d", i, x.PathId)
			d.functions[tracetypes.FunctionId(len(d.functions))] = true
		case tracetypes.VariableNameEvent:
			d.variables[tracetypes.VariableId(len(d.variables))] = true
		case tracetypes.TypeEvent:
			d.types[tracetypes.TypeId(len(d.types))] = true
		case tracetypes.StepEvent:
			require.True(t, d.paths[x.PathId], "event %d: Step refers to undeclared path %d", i, x.PathId)
		case tracetypes.CallEvent:
			require.True(t, d.functions[x.FunctionId], "event %d: Call refers to undeclared function %d", i, x.FunctionId)
			for _, a := range x.Args {
				require.True(t, d.variables[a.VariableId], "event %d: Call arg refers to undeclared variable %d", i, a.VariableId)
			}
		case tracetypes.ValueEvent:
			require.True(t, d.variables[x.VariableId], "event %d: Value refers to undeclared variable %d", i, x.VariableId)
		case tracetypes.BindVariableEvent:
			require.True(t, d.variables[x.VariableId], "event %d: BindVariable refers to undeclared variable %d", i, x.VariableId)
		case tracetypes.VariableCellEvent:
			require.True(t, d.variables[x.VariableId], "event %d: VariableCell refers to undeclared variable %d", i, x.VariableId)
		case tracetypes.DropVariableEvent:
			require.True(t, d.variables[x.VariableId], "event %d: DropVariable refers to undeclared variable %d", i, x.VariableId)
		case tracetypes.DropVariablesEvent:
			for _, id := range x.VariableIds {
				require.True(t, d.variables[id], "event %d: DropVariables refers to undeclared variable %d", i, id)
			}
		case tracetypes.AssignmentEvent:
			require.True(t, d.variables[x.To], "event %d: Assignment refers to undeclared variable %d", i, x.To)
		}
	}
}

// TestDeclarationBeforeUse runs a representative producer session
// through the Writer and checks, with requireDeclared, that the path,
// function and variable references in the resulting stream were
// declared by an earlier event,
// for every prefix of the stream (a crash after any event must still
// leave a valid prefix behind).
func TestDeclarationBeforeUse(t *testing.T) {
	w, dir := mustBegin(t, FormatJSON)
	fid := w.tables.ensureFunctionID("main", "main.rs", 1)
	require.NoError(t, w.RegisterStep("main.rs", 1))
	vid, err := w.RegisterVariableName("x")
	require.NoError(t, err)
	typeId := w.tables.ensureTypeID(tracetypes.TypeKindInt, "i32")
	require.NoError(t, w.RegisterFullValue(vid, tracetypes.IntValue{I: 1, TypeId: typeId}))
	require.NoError(t, w.RegisterCall(fid, []tracetypes.FullValueRecord{{VariableId: vid, Value: tracetypes.IntValue{I: 1, TypeId: typeId}}}))
	require.NoError(t, w.RegisterReturn(tracetypes.NoneRecord))
	require.NoError(t, w.DropVariable("x"))
	require.NoError(t, w.Close())

	events, err := LoadTraceEvents(filepath.Join(dir, "trace.json"), FormatJSON)
	require.NoError(t, err)

	for prefixLen := 1; prefixLen <= len(events); prefixLen++ {
		requireDeclared(t, events[:prefixLen])
	}
}
