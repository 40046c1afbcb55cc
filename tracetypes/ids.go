// Package tracetypes defines the data model shared by every trace
// writer and reader: the identifier namespaces, the value and type
// records, and the low-level event algebra that makes up a trace
// stream.
package tracetypes

// PathId indexes the path table. It is the position of the Path
// event that declared it.
type PathId int

// FunctionId indexes the function table. FunctionId(0) is reserved
// for the synthetic top-level pseudo-function that exists before any
// user call is observed.
type FunctionId int

// VariableId indexes the variable-name table.
type VariableId int

// TypeId indexes the type table. TypeId(0) is reserved for the None
// type and is never declared by a Type event.
type TypeId int

// StepId is the ordinal of a Step (or Event) record within the
// stream, used to back-reference a point in the trace.
type StepId int

// Place is an opaque handle into the instrumentation frontend's
// arena of mutable storage locations. The core never dereferences a
// Place; it only threads it through CompoundValue/CellValue/
// AssignCompoundItem/AssignCell/BindVariable/VariableCell events.
type Place uint64

// NoneTypeID is the reserved type id meaning "no type".
const NoneTypeID TypeId = 0

// TopLevelFunctionID is the reserved function id for the synthetic
// frame that exists before any user call.
const TopLevelFunctionID FunctionId = 0
