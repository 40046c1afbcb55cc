package traceio

import (
	"strconv"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// internTables holds every identifier namespace a Writer allocates
// from. All tables are born empty and only ever grow: there is no
// removal, matching the "lifecycle" of spec section 3.
//
// The lookup-then-lazily-create shape mirrors perfsession.Session's
// ensurePID: look the identity up, and on a miss allocate the next
// dense ordinal and hand the declaration event to the sink before
// returning the new id.
type internTables struct {
	paths     map[string]tracetypes.PathId
	pathList  []string
	functions map[functionKey]tracetypes.FunctionId
	variables map[string]tracetypes.VariableId
	varList   []string
	types     map[typeKey]tracetypes.TypeId
	rawTypes  map[rawTypeKey]tracetypes.TypeId
	typeList  []tracetypes.TypeRecord

	emit func(tracetypes.LowLevelEvent)
}

type functionKey struct {
	name   string
	pathId tracetypes.PathId
	line   int64
}

type typeKey struct {
	kind     tracetypes.TypeKind
	langType string
}

// rawTypeKey is the identity used by ensureRawTypeID: the whole
// record, not just (kind, lang_type), because struct/pointer shape
// matters to callers that register a full raw type.
type rawTypeKey struct {
	kind     tracetypes.TypeKind
	langType string
	shape    string // flattened SpecificInfo, see shapeKey
}

func newInternTables(emit func(tracetypes.LowLevelEvent)) *internTables {
	return &internTables{
		paths:     make(map[string]tracetypes.PathId),
		functions: make(map[functionKey]tracetypes.FunctionId),
		variables: make(map[string]tracetypes.VariableId),
		types:     make(map[typeKey]tracetypes.TypeId),
		rawTypes:  make(map[rawTypeKey]tracetypes.TypeId),
		emit:      emit,
	}
}

// reserveTopLevelFunction occupies FunctionId(0) for the synthetic
// top-level pseudo-function without declaring it: like NoneTypeID, the
// reserved id is never the subject of a declaration event. The key
// uses an impossible PathId so no real (name, path, line) triple can
// ever collide with it.
func (t *internTables) reserveTopLevelFunction() {
	key := functionKey{name: "", pathId: -1, line: 0}
	t.functions[key] = tracetypes.TopLevelFunctionID
}

func (t *internTables) ensurePathID(path string) tracetypes.PathId {
	if id, ok := t.paths[path]; ok {
		return id
	}
	id := tracetypes.PathId(len(t.pathList))
	t.paths[path] = id
	t.pathList = append(t.pathList, path)
	t.emit(tracetypes.PathEvent{Path: path})
	return id
}

func (t *internTables) ensureFunctionID(name, path string, line int64) tracetypes.FunctionId {
	pathId := t.ensurePathID(path)
	key := functionKey{name, pathId, line}
	if id, ok := t.functions[key]; ok {
		return id
	}
	id := tracetypes.FunctionId(len(t.functions))
	t.functions[key] = id
	t.emit(tracetypes.FunctionEvent{PathId: pathId, Line: line, Name: name})
	return id
}

func (t *internTables) ensureVariableID(name string) tracetypes.VariableId {
	if id, ok := t.variables[name]; ok {
		return id
	}
	id := tracetypes.VariableId(len(t.varList))
	t.variables[name] = id
	t.varList = append(t.varList, name)
	t.emit(tracetypes.VariableNameEvent{Name: name})
	return id
}

func (t *internTables) ensureTypeID(kind tracetypes.TypeKind, langType string) tracetypes.TypeId {
	if kind == tracetypes.TypeKindNone {
		return tracetypes.NoneTypeID
	}
	key := typeKey{kind, langType}
	if id, ok := t.types[key]; ok {
		return id
	}
	id := tracetypes.TypeId(len(t.typeList) + 1) // 0 is reserved for None
	t.types[key] = id
	rec := tracetypes.TypeRecord{Kind: kind, LangType: langType, SpecificInfo: tracetypes.NoneTypeInfo{}}
	t.typeList = append(t.typeList, rec)
	t.emit(tracetypes.TypeEvent{Kind_: kind, LangType: langType, SpecificInfo: tracetypes.NoneTypeInfo{}})
	return id
}

func (t *internTables) ensureRawTypeID(rec tracetypes.TypeRecord) tracetypes.TypeId {
	if rec.Kind == tracetypes.TypeKindNone {
		return tracetypes.NoneTypeID
	}
	key := rawTypeKey{rec.Kind, rec.LangType, shapeKey(rec.SpecificInfo)}
	if id, ok := t.rawTypes[key]; ok {
		return id
	}
	id := tracetypes.TypeId(len(t.typeList) + 1)
	t.rawTypes[key] = id
	t.typeList = append(t.typeList, rec)
	t.emit(tracetypes.TypeEvent{Kind_: rec.Kind, LangType: rec.LangType, SpecificInfo: rec.SpecificInfo})
	return id
}

// shapeKey flattens a TypeSpecificInfo to a comparable string so it
// can sit inside a map key alongside (kind, lang_type).
func shapeKey(info tracetypes.TypeSpecificInfo) string {
	switch v := info.(type) {
	case tracetypes.NoneTypeInfo, nil:
		return "none"
	case tracetypes.StructTypeInfo:
		s := "struct:"
		for _, f := range v.Fields {
			s += f.Name + "=" + strconv.FormatInt(int64(f.TypeId), 10) + ","
		}
		return s
	case tracetypes.PointerTypeInfo:
		return "pointer:" + strconv.FormatInt(int64(v.DereferenceTypeId), 10)
	default:
		return "unknown"
	}
}

