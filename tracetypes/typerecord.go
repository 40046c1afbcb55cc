package tracetypes

// TypeSpecificInfo carries the shape-specific payload of a TypeRecord
// beyond its TypeKind and lang_type string. It is a closed sum: None,
// Struct, or Pointer. New variants are appended, never inserted.
type TypeSpecificInfo interface {
	typeSpecificInfo()
}

// NoneTypeInfo is the TypeSpecificInfo of every type that carries no
// extra shape information.
type NoneTypeInfo struct{}

func (NoneTypeInfo) typeSpecificInfo() {}

// StructField is one positional field of a TypeKindStruct TypeRecord.
// Field values in a Struct ValueRecord are matched to these by index,
// not by name; the name here is purely descriptive.
type StructField struct {
	Name   string
	TypeId TypeId
}

// StructTypeInfo describes the fields of a struct-shaped type.
type StructTypeInfo struct {
	Fields []StructField
}

func (StructTypeInfo) typeSpecificInfo() {}

// PointerTypeInfo names the type pointed to by a pointer-shaped type.
type PointerTypeInfo struct {
	DereferenceTypeId TypeId
}

func (PointerTypeInfo) typeSpecificInfo() {}

// TypeRecord is the full declaration of a type: its ordinal kind, the
// source-language spelling, and any shape-specific payload.
//
// Two identities are in play for interning: the fast path keys on
// (Kind, LangType) alone, treating SpecificInfo as always None; the
// raw path keys on the whole record, for struct/pointer types whose
// shape matters to callers (see Writer.RegisterRawType).
type TypeRecord struct {
	Kind         TypeKind
	LangType     string
	SpecificInfo TypeSpecificInfo
}
