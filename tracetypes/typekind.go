package tracetypes

import "strconv"

// TypeKind is a closed ordinal enumeration of the shapes a TypeRecord
// can describe. The ordinals are wire-stable: new kinds are only ever
// appended, never renumbered, so that old binary traces keep decoding
// under newer readers. Readers must tolerate ordinals they don't
// recognize yet.
type TypeKind uint32

const (
	TypeKindSeq TypeKind = iota
	TypeKindSet
	TypeKindHashSet
	TypeKindOrderedSet
	TypeKindArray
	TypeKindVarargs
	TypeKindStruct
	TypeKindInt
	TypeKindFloat
	TypeKindString
	TypeKindCString
	TypeKindChar
	TypeKindBool
	TypeKindLiteral
	TypeKindRef
	TypeKindRecursion
	TypeKindRaw
	TypeKindEnum
	TypeKindEnum16
	TypeKindEnum32
	TypeKindC
	TypeKindTableKind
	TypeKindUnion
	TypeKindPointer
	TypeKindError
	TypeKindFunctionKind
	TypeKindTypeValue
	TypeKindTuple
	TypeKindVariant
	TypeKindHtml
	TypeKindNone
	TypeKindNonExpanded
	TypeKindAny
	TypeKindSlice
)

var typeKindNames = [...]string{
	"Seq", "Set", "HashSet", "OrderedSet", "Array", "Varargs", "Struct",
	"Int", "Float", "String", "CString", "Char", "Bool", "Literal",
	"Ref", "Recursion", "Raw", "Enum", "Enum16", "Enum32", "C",
	"TableKind", "Union", "Pointer", "Error", "FunctionKind",
	"TypeValue", "Tuple", "Variant", "Html", "None", "NonExpanded",
	"Any", "Slice",
}

// String implements fmt.Stringer. Unknown ordinals (from a future
// format revision) print as a numeric fallback rather than panicking.
func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "TypeKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}

// EventLogKind is a closed ordinal enumeration of the special log
// events an Event record can carry (spec. EventLogKind table).
type EventLogKind uint32

const (
	EventLogWrite EventLogKind = iota
	EventLogWriteFile
	EventLogWriteOther
	EventLogRead
	EventLogReadFile
	EventLogReadOther
	EventLogReadDir
	EventLogOpenDir
	EventLogCloseDir
	EventLogSocket
	EventLogOpen
	EventLogError
	EventLogTraceLogEvent
)

var eventLogKindNames = [...]string{
	"Write", "WriteFile", "WriteOther", "Read", "ReadFile", "ReadOther",
	"ReadDir", "OpenDir", "CloseDir", "Socket", "Open", "Error",
	"TraceLogEvent",
}

func (k EventLogKind) String() string {
	if int(k) < len(eventLogKindNames) {
		return eventLogKindNames[k]
	}
	return "EventLogKind(" + strconv.FormatUint(uint64(k), 10) + ")"
}
