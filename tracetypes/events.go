package tracetypes

// LowLevelEvent is the common interface implemented by every entry in
// a trace stream. Kind names the variant; it must match the
// externally-tagged JSON key exactly (see the wire encoding table).
// The codecs do not call Kind: they switch on the concrete type.
type LowLevelEvent interface {
	Kind() string
}

type PathEvent struct {
	Path string
}

func (PathEvent) Kind() string { return "Path" }

type VariableNameEvent struct {
	Name string
}

func (VariableNameEvent) Kind() string { return "VariableName" }

type TypeEvent struct {
	Kind_        TypeKind
	LangType     string
	SpecificInfo TypeSpecificInfo
}

func (TypeEvent) Kind() string { return "Type" }

type ValueEvent struct {
	VariableId VariableId
	Value      ValueRecord
}

func (ValueEvent) Kind() string { return "Value" }

type FunctionEvent struct {
	PathId PathId
	Line   int64
	Name   string
}

func (FunctionEvent) Kind() string { return "Function" }

type StepEvent struct {
	PathId PathId
	Line   int64
}

func (StepEvent) Kind() string { return "Step" }

type CallEvent struct {
	FunctionId FunctionId
	Args       []FullValueRecord
}

func (CallEvent) Kind() string { return "Call" }

type ReturnEvent struct {
	ReturnValue ValueRecord
}

func (ReturnEvent) Kind() string { return "Return" }

// EventLogEvent is the generic "special event" record (spec.
// register_special_event). Metadata is preserved but never populated
// by any producer in this repo; see the design note on Event.metadata.
type EventLogEvent struct {
	EventKind EventLogKind
	Metadata  string
	Content   string
}

func (EventLogEvent) Kind() string { return "Event" }

type AsmEvent struct {
	Instructions []string
}

func (AsmEvent) Kind() string { return "Asm" }

type BindVariableEvent struct {
	VariableId VariableId
	Place      Place
}

func (BindVariableEvent) Kind() string { return "BindVariable" }

type AssignmentEvent struct {
	To     VariableId
	PassBy PassBy
	From   RValue
}

func (AssignmentEvent) Kind() string { return "Assignment" }

type DropVariablesEvent struct {
	VariableIds []VariableId
}

func (DropVariablesEvent) Kind() string { return "DropVariables" }

type CompoundValueEvent struct {
	Place Place
	Value ValueRecord
}

func (CompoundValueEvent) Kind() string { return "CompoundValue" }

type CellValueEvent struct {
	Place Place
	Value ValueRecord
}

func (CellValueEvent) Kind() string { return "CellValue" }

type AssignCompoundItemEvent struct {
	Place     Place
	Index     int64
	ItemPlace Place
}

func (AssignCompoundItemEvent) Kind() string { return "AssignCompoundItem" }

type AssignCellEvent struct {
	Place    Place
	NewValue ValueRecord
}

func (AssignCellEvent) Kind() string { return "AssignCell" }

type VariableCellEvent struct {
	VariableId VariableId
	Place      Place
}

func (VariableCellEvent) Kind() string { return "VariableCell" }

// DropVariableEvent is encoded as a bare number in JSON, not an
// object; see marshalEvent/unmarshalEvent in traceio/json.go.
type DropVariableEvent struct {
	VariableId VariableId
}

func (DropVariableEvent) Kind() string { return "DropVariable" }

// DropLastStepEvent is a forward marker, not a mutation: it cancels
// the immediately preceding Step for replay purposes without removing
// any bytes already written.
type DropLastStepEvent struct{}

func (DropLastStepEvent) Kind() string { return "DropLastStep" }
