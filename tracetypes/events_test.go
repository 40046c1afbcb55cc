package tracetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventKindTags checks that every event variant reports the exact
// JSON discriminator key the wire encoding table names; a mismatch
// here is a format break, not just a label typo.
func TestEventKindTags(t *testing.T) {
	cases := []struct {
		event LowLevelEvent
		want  string
	}{
		{PathEvent{}, "Path"},
		{VariableNameEvent{}, "VariableName"},
		{TypeEvent{}, "Type"},
		{ValueEvent{}, "Value"},
		{FunctionEvent{}, "Function"},
		{StepEvent{}, "Step"},
		{CallEvent{}, "Call"},
		{ReturnEvent{}, "Return"},
		{EventLogEvent{}, "Event"},
		{AsmEvent{}, "Asm"},
		{BindVariableEvent{}, "BindVariable"},
		{AssignmentEvent{}, "Assignment"},
		{DropVariablesEvent{}, "DropVariables"},
		{CompoundValueEvent{}, "CompoundValue"},
		{CellValueEvent{}, "CellValue"},
		{AssignCompoundItemEvent{}, "AssignCompoundItem"},
		{AssignCellEvent{}, "AssignCell"},
		{VariableCellEvent{}, "VariableCell"},
		{DropVariableEvent{}, "DropVariable"},
		{DropLastStepEvent{}, "DropLastStep"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.event.Kind())
	}
}

func TestValueRecordVariantsImplementInterface(t *testing.T) {
	var records = []ValueRecord{
		IntValue{},
		Int128Value{},
		FloatValue{},
		BoolValue{},
		StringValue{},
		SequenceValue{},
		TupleValue{},
		StructValue{},
		VariantValue{},
		ReferenceValue{},
		RawValue{},
		ErrorValue{},
		NoneValue{},
		CellValue{},
	}
	assert.Len(t, records, 14)
	assert.Equal(t, NoneValue{TypeId: NoneTypeID}, NoneRecord)
}

func TestRValueVariantsImplementInterface(t *testing.T) {
	var rvalues = []RValue{
		SimpleRValue{VariableId: 3},
		CompoundRValue{VariableIds: []VariableId{1, 2}},
	}
	assert.Len(t, rvalues, 2)
}

func TestPassByConstants(t *testing.T) {
	assert.Equal(t, PassBy("Value"), PassByValue)
	assert.Equal(t, PassBy("Reference"), PassByReference)
}
