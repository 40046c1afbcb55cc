package tracetypes

// ValueRecord is the closed variant set of value snapshots a trace
// can carry. Every variant except Cell carries its own TypeId; Cell
// instead carries a Place, and its referent is defined by separate
// CellValue/AssignCell events rather than embedded inline, which is
// how cyclic value graphs are expressed without owning a cycle in the
// value tree itself (see the design note on cyclic value graphs).
type ValueRecord interface {
	valueRecord()
}

type IntValue struct {
	I      int64
	TypeId TypeId
}

func (IntValue) valueRecord() {}

// Int128Value carries a 128-bit signed integer. Go has no native
// int128, so the value is kept as its base-10 textual form (the same
// representation both wire formats use for this one field) rather
// than splitting it into two machine words that every caller would
// have to recombine.
type Int128Value struct {
	I      string
	TypeId TypeId
}

func (Int128Value) valueRecord() {}

type FloatValue struct {
	F      float64
	TypeId TypeId
}

func (FloatValue) valueRecord() {}

type BoolValue struct {
	B      bool
	TypeId TypeId
}

func (BoolValue) valueRecord() {}

type StringValue struct {
	Text   string
	TypeId TypeId
}

func (StringValue) valueRecord() {}

// SequenceValue represents an ordered collection. IsSlice has no
// defined effect on replay and is retained verbatim across encodings.
type SequenceValue struct {
	Elements []ValueRecord
	IsSlice  bool
	TypeId   TypeId
}

func (SequenceValue) valueRecord() {}

type TupleValue struct {
	Elements []ValueRecord
	TypeId   TypeId
}

func (TupleValue) valueRecord() {}

// StructValue holds field values positionally; field names come from
// the referenced Type's StructTypeInfo, not from this record.
type StructValue struct {
	FieldValues []ValueRecord
	TypeId      TypeId
}

func (StructValue) valueRecord() {}

type VariantValue struct {
	Discriminator string
	Contents      ValueRecord
	TypeId        TypeId
}

func (VariantValue) valueRecord() {}

type ReferenceValue struct {
	Dereferenced ValueRecord
	Address      uint64
	Mutable      bool
	TypeId       TypeId
}

func (ReferenceValue) valueRecord() {}

type RawValue struct {
	R      string
	TypeId TypeId
}

func (RawValue) valueRecord() {}

type ErrorValue struct {
	Msg    string
	TypeId TypeId
}

func (ErrorValue) valueRecord() {}

type NoneValue struct {
	TypeId TypeId
}

func (NoneValue) valueRecord() {}

// CellValue is a pointer into the place table. It carries no TypeId
// of its own; the referent's type is discovered by following the
// CellValue/AssignCell events for Place.
type CellValue struct {
	Place Place
}

func (CellValue) valueRecord() {}

// NoneRecord is the canonical "no value" record, reused wherever a
// caller has nothing to report (e.g. Return of a unit-typed call).
var NoneRecord ValueRecord = NoneValue{TypeId: NoneTypeID}

// FullValueRecord pairs a variable with its value snapshot, as
// carried by Value events and by Call argument lists.
type FullValueRecord struct {
	VariableId VariableId
	Value      ValueRecord
}

// PassBy distinguishes an Assignment's evaluation mode.
type PassBy string

const (
	PassByValue     PassBy = "Value"
	PassByReference PassBy = "Reference"
)

// RValue is the right-hand side of an Assignment: either a single
// variable read or a compound read of several variables at once.
type RValue interface {
	rvalue()
}

type SimpleRValue struct {
	VariableId VariableId
}

func (SimpleRValue) rvalue() {}

type CompoundRValue struct {
	VariableIds []VariableId
}

func (CompoundRValue) rvalue() {}
