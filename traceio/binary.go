package traceio

import (
	"fmt"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// Event tag bytes for the binary framing. Ordinals are wire-stable:
// new event kinds are appended, never inserted, mirroring the closed
// ordinal discipline used for TypeKind and EventLogKind.
const (
	tagPath byte = iota
	tagVariableName
	tagType
	tagValue
	tagFunction
	tagStep
	tagCall
	tagReturn
	tagEvent
	tagAsm
	tagBindVariable
	tagAssignment
	tagDropVariables
	tagCompoundValue
	tagCellValue
	tagAssignCompoundItem
	tagAssignCell
	tagVariableCell
	tagDropVariable
	tagDropLastStep
)

// Value record tag bytes.
const (
	vtagInt byte = iota
	vtagInt128
	vtagFloat
	vtagBool
	vtagString
	vtagSequence
	vtagTuple
	vtagStruct
	vtagVariant
	vtagReference
	vtagRaw
	vtagError
	vtagNone
	vtagCell
)

// TypeSpecificInfo tag bytes.
const (
	ttagNone byte = iota
	ttagStruct
	ttagPointer
)

// RValue tag bytes.
const (
	rtagSimple byte = iota
	rtagCompound
)

func encodeEventBody(e tracetypes.LowLevelEvent) ([]byte, error) {
	enc := &bufEncoder{}
	switch x := e.(type) {
	case tracetypes.PathEvent:
		enc.byte(tagPath)
		enc.lenString(x.Path)

	case tracetypes.VariableNameEvent:
		enc.byte(tagVariableName)
		enc.lenString(x.Name)

	case tracetypes.TypeEvent:
		enc.byte(tagType)
		enc.u32(uint32(x.Kind_))
		enc.lenString(x.LangType)
		if err := encodeTypeInfo(enc, x.SpecificInfo); err != nil {
			return nil, err
		}

	case tracetypes.ValueEvent:
		enc.byte(tagValue)
		enc.u32(uint32(x.VariableId))
		if err := encodeValue(enc, x.Value); err != nil {
			return nil, err
		}

	case tracetypes.FunctionEvent:
		enc.byte(tagFunction)
		enc.u32(uint32(x.PathId))
		enc.i64(x.Line)
		enc.lenString(x.Name)

	case tracetypes.StepEvent:
		enc.byte(tagStep)
		enc.u32(uint32(x.PathId))
		enc.i64(x.Line)

	case tracetypes.CallEvent:
		enc.byte(tagCall)
		enc.u32(uint32(x.FunctionId))
		enc.u32(uint32(len(x.Args)))
		for _, a := range x.Args {
			enc.u32(uint32(a.VariableId))
			if err := encodeValue(enc, a.Value); err != nil {
				return nil, err
			}
		}

	case tracetypes.ReturnEvent:
		enc.byte(tagReturn)
		if err := encodeValue(enc, x.ReturnValue); err != nil {
			return nil, err
		}

	case tracetypes.EventLogEvent:
		enc.byte(tagEvent)
		enc.u32(uint32(x.EventKind))
		enc.lenString(x.Metadata)
		enc.lenString(x.Content)

	case tracetypes.AsmEvent:
		enc.byte(tagAsm)
		enc.stringList(x.Instructions)

	case tracetypes.BindVariableEvent:
		enc.byte(tagBindVariable)
		enc.u32(uint32(x.VariableId))
		enc.u64(uint64(x.Place))

	case tracetypes.AssignmentEvent:
		enc.byte(tagAssignment)
		enc.u32(uint32(x.To))
		if x.PassBy == tracetypes.PassByReference {
			enc.byte(1)
		} else {
			enc.byte(0)
		}
		if err := encodeRValue(enc, x.From); err != nil {
			return nil, err
		}

	case tracetypes.DropVariablesEvent:
		enc.byte(tagDropVariables)
		enc.u32(uint32(len(x.VariableIds)))
		for _, id := range x.VariableIds {
			enc.u32(uint32(id))
		}

	case tracetypes.CompoundValueEvent:
		enc.byte(tagCompoundValue)
		enc.u64(uint64(x.Place))
		if err := encodeValue(enc, x.Value); err != nil {
			return nil, err
		}

	case tracetypes.CellValueEvent:
		enc.byte(tagCellValue)
		enc.u64(uint64(x.Place))
		if err := encodeValue(enc, x.Value); err != nil {
			return nil, err
		}

	case tracetypes.AssignCompoundItemEvent:
		enc.byte(tagAssignCompoundItem)
		enc.u64(uint64(x.Place))
		enc.i64(x.Index)
		enc.u64(uint64(x.ItemPlace))

	case tracetypes.AssignCellEvent:
		enc.byte(tagAssignCell)
		enc.u64(uint64(x.Place))
		if err := encodeValue(enc, x.NewValue); err != nil {
			return nil, err
		}

	case tracetypes.VariableCellEvent:
		enc.byte(tagVariableCell)
		enc.u32(uint32(x.VariableId))
		enc.u64(uint64(x.Place))

	case tracetypes.DropVariableEvent:
		enc.byte(tagDropVariable)
		enc.u32(uint32(x.VariableId))

	case tracetypes.DropLastStepEvent:
		enc.byte(tagDropLastStep)

	default:
		return nil, fmt.Errorf("traceio: unknown event type %T", e)
	}
	return enc.buf, nil
}

func decodeEventBody(dec *bufDecoder) (tracetypes.LowLevelEvent, error) {
	tag, err := dec.byteVal()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagPath:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		return tracetypes.PathEvent{Path: s}, nil

	case tagVariableName:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		return tracetypes.VariableNameEvent{Name: s}, nil

	case tagType:
		kind, err := dec.u32()
		if err != nil {
			return nil, err
		}
		langType, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		info, err := decodeTypeInfo(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.TypeEvent{Kind_: tracetypes.TypeKind(kind), LangType: langType, SpecificInfo: info}, nil

	case tagValue:
		vid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.ValueEvent{VariableId: tracetypes.VariableId(vid), Value: v}, nil

	case tagFunction:
		pathId, err := dec.u32()
		if err != nil {
			return nil, err
		}
		line, err := dec.i64()
		if err != nil {
			return nil, err
		}
		name, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		return tracetypes.FunctionEvent{PathId: tracetypes.PathId(pathId), Line: line, Name: name}, nil

	case tagStep:
		pathId, err := dec.u32()
		if err != nil {
			return nil, err
		}
		line, err := dec.i64()
		if err != nil {
			return nil, err
		}
		return tracetypes.StepEvent{PathId: tracetypes.PathId(pathId), Line: line}, nil

	case tagCall:
		fid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		args := make([]tracetypes.FullValueRecord, n)
		for i := range args {
			vid, err := dec.u32()
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			args[i] = tracetypes.FullValueRecord{VariableId: tracetypes.VariableId(vid), Value: v}
		}
		return tracetypes.CallEvent{FunctionId: tracetypes.FunctionId(fid), Args: args}, nil

	case tagReturn:
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.ReturnEvent{ReturnValue: v}, nil

	case tagEvent:
		kind, err := dec.u32()
		if err != nil {
			return nil, err
		}
		metadata, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		content, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		return tracetypes.EventLogEvent{EventKind: tracetypes.EventLogKind(kind), Metadata: metadata, Content: content}, nil

	case tagAsm:
		instrs, err := dec.stringList()
		if err != nil {
			return nil, err
		}
		return tracetypes.AsmEvent{Instructions: instrs}, nil

	case tagBindVariable:
		vid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		return tracetypes.BindVariableEvent{VariableId: tracetypes.VariableId(vid), Place: tracetypes.Place(place)}, nil

	case tagAssignment:
		to, err := dec.u32()
		if err != nil {
			return nil, err
		}
		passByRef, err := dec.byteVal()
		if err != nil {
			return nil, err
		}
		from, err := decodeRValue(dec)
		if err != nil {
			return nil, err
		}
		passBy := tracetypes.PassByValue
		if passByRef == 1 {
			passBy = tracetypes.PassByReference
		}
		return tracetypes.AssignmentEvent{To: tracetypes.VariableId(to), PassBy: passBy, From: from}, nil

	case tagDropVariables:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		ids := make([]tracetypes.VariableId, n)
		for i := range ids {
			v, err := dec.u32()
			if err != nil {
				return nil, err
			}
			ids[i] = tracetypes.VariableId(v)
		}
		return tracetypes.DropVariablesEvent{VariableIds: ids}, nil

	case tagCompoundValue:
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.CompoundValueEvent{Place: tracetypes.Place(place), Value: v}, nil

	case tagCellValue:
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.CellValueEvent{Place: tracetypes.Place(place), Value: v}, nil

	case tagAssignCompoundItem:
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		index, err := dec.i64()
		if err != nil {
			return nil, err
		}
		itemPlace, err := dec.u64()
		if err != nil {
			return nil, err
		}
		return tracetypes.AssignCompoundItemEvent{Place: tracetypes.Place(place), Index: index, ItemPlace: tracetypes.Place(itemPlace)}, nil

	case tagAssignCell:
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		return tracetypes.AssignCellEvent{Place: tracetypes.Place(place), NewValue: v}, nil

	case tagVariableCell:
		vid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		return tracetypes.VariableCellEvent{VariableId: tracetypes.VariableId(vid), Place: tracetypes.Place(place)}, nil

	case tagDropVariable:
		vid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.DropVariableEvent{VariableId: tracetypes.VariableId(vid)}, nil

	case tagDropLastStep:
		return tracetypes.DropLastStepEvent{}, nil

	default:
		return nil, fmt.Errorf("traceio: unknown event tag %d", tag)
	}
}

func encodeValue(enc *bufEncoder, v tracetypes.ValueRecord) error {
	switch x := v.(type) {
	case tracetypes.IntValue:
		enc.byte(vtagInt)
		enc.i64(x.I)
		enc.u32(uint32(x.TypeId))

	case tracetypes.Int128Value:
		enc.byte(vtagInt128)
		enc.lenString(x.I)
		enc.u32(uint32(x.TypeId))

	case tracetypes.FloatValue:
		enc.byte(vtagFloat)
		enc.f64(x.F)
		enc.u32(uint32(x.TypeId))

	case tracetypes.BoolValue:
		enc.byte(vtagBool)
		enc.boolean(x.B)
		enc.u32(uint32(x.TypeId))

	case tracetypes.StringValue:
		enc.byte(vtagString)
		enc.lenString(x.Text)
		enc.u32(uint32(x.TypeId))

	case tracetypes.SequenceValue:
		enc.byte(vtagSequence)
		enc.u32(uint32(len(x.Elements)))
		for _, e := range x.Elements {
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		enc.boolean(x.IsSlice)
		enc.u32(uint32(x.TypeId))

	case tracetypes.TupleValue:
		enc.byte(vtagTuple)
		enc.u32(uint32(len(x.Elements)))
		for _, e := range x.Elements {
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		enc.u32(uint32(x.TypeId))

	case tracetypes.StructValue:
		enc.byte(vtagStruct)
		enc.u32(uint32(len(x.FieldValues)))
		for _, e := range x.FieldValues {
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		enc.u32(uint32(x.TypeId))

	case tracetypes.VariantValue:
		enc.byte(vtagVariant)
		enc.lenString(x.Discriminator)
		if err := encodeValue(enc, x.Contents); err != nil {
			return err
		}
		enc.u32(uint32(x.TypeId))

	case tracetypes.ReferenceValue:
		enc.byte(vtagReference)
		if err := encodeValue(enc, x.Dereferenced); err != nil {
			return err
		}
		enc.u64(x.Address)
		enc.boolean(x.Mutable)
		enc.u32(uint32(x.TypeId))

	case tracetypes.RawValue:
		enc.byte(vtagRaw)
		enc.lenString(x.R)
		enc.u32(uint32(x.TypeId))

	case tracetypes.ErrorValue:
		enc.byte(vtagError)
		enc.lenString(x.Msg)
		enc.u32(uint32(x.TypeId))

	case tracetypes.NoneValue:
		enc.byte(vtagNone)
		enc.u32(uint32(x.TypeId))

	case tracetypes.CellValue:
		enc.byte(vtagCell)
		enc.u64(uint64(x.Place))

	default:
		return fmt.Errorf("traceio: unknown value record type %T", v)
	}
	return nil
}

func decodeValue(dec *bufDecoder) (tracetypes.ValueRecord, error) {
	tag, err := dec.byteVal()
	if err != nil {
		return nil, err
	}
	switch tag {
	case vtagInt:
		i, err := dec.i64()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.IntValue{I: i, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagInt128:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.Int128Value{I: s, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagFloat:
		f, err := dec.f64()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.FloatValue{F: f, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagBool:
		b, err := dec.boolean()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.BoolValue{B: b, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagString:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.StringValue{Text: s, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagSequence:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		elems := make([]tracetypes.ValueRecord, n)
		for i := range elems {
			elems[i], err = decodeValue(dec)
			if err != nil {
				return nil, err
			}
		}
		isSlice, err := dec.boolean()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.SequenceValue{Elements: elems, IsSlice: isSlice, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagTuple:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		elems := make([]tracetypes.ValueRecord, n)
		for i := range elems {
			elems[i], err = decodeValue(dec)
			if err != nil {
				return nil, err
			}
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.TupleValue{Elements: elems, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagStruct:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		fields := make([]tracetypes.ValueRecord, n)
		for i := range fields {
			fields[i], err = decodeValue(dec)
			if err != nil {
				return nil, err
			}
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.StructValue{FieldValues: fields, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagVariant:
		disc, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		contents, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.VariantValue{Discriminator: disc, Contents: contents, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagReference:
		deref, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		addr, err := dec.u64()
		if err != nil {
			return nil, err
		}
		mutable, err := dec.boolean()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.ReferenceValue{Dereferenced: deref, Address: addr, Mutable: mutable, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagRaw:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.RawValue{R: s, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagError:
		s, err := dec.lenString()
		if err != nil {
			return nil, err
		}
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.ErrorValue{Msg: s, TypeId: tracetypes.TypeId(tid)}, nil

	case vtagNone:
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.NoneValue{TypeId: tracetypes.TypeId(tid)}, nil

	case vtagCell:
		place, err := dec.u64()
		if err != nil {
			return nil, err
		}
		return tracetypes.CellValue{Place: tracetypes.Place(place)}, nil

	default:
		return nil, fmt.Errorf("traceio: unknown value tag %d", tag)
	}
}

func encodeTypeInfo(enc *bufEncoder, info tracetypes.TypeSpecificInfo) error {
	switch x := info.(type) {
	case nil, tracetypes.NoneTypeInfo:
		enc.byte(ttagNone)

	case tracetypes.StructTypeInfo:
		enc.byte(ttagStruct)
		enc.u32(uint32(len(x.Fields)))
		for _, f := range x.Fields {
			enc.lenString(f.Name)
			enc.u32(uint32(f.TypeId))
		}

	case tracetypes.PointerTypeInfo:
		enc.byte(ttagPointer)
		enc.u32(uint32(x.DereferenceTypeId))

	default:
		return fmt.Errorf("traceio: unknown type specific info %T", info)
	}
	return nil
}

func decodeTypeInfo(dec *bufDecoder) (tracetypes.TypeSpecificInfo, error) {
	tag, err := dec.byteVal()
	if err != nil {
		return nil, err
	}
	switch tag {
	case ttagNone:
		return tracetypes.NoneTypeInfo{}, nil

	case ttagStruct:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		fields := make([]tracetypes.StructField, n)
		for i := range fields {
			name, err := dec.lenString()
			if err != nil {
				return nil, err
			}
			tid, err := dec.u32()
			if err != nil {
				return nil, err
			}
			fields[i] = tracetypes.StructField{Name: name, TypeId: tracetypes.TypeId(tid)}
		}
		return tracetypes.StructTypeInfo{Fields: fields}, nil

	case ttagPointer:
		tid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.PointerTypeInfo{DereferenceTypeId: tracetypes.TypeId(tid)}, nil

	default:
		return nil, fmt.Errorf("traceio: unknown type specific info tag %d", tag)
	}
}

func encodeRValue(enc *bufEncoder, r tracetypes.RValue) error {
	switch x := r.(type) {
	case tracetypes.SimpleRValue:
		enc.byte(rtagSimple)
		enc.u32(uint32(x.VariableId))

	case tracetypes.CompoundRValue:
		enc.byte(rtagCompound)
		enc.u32(uint32(len(x.VariableIds)))
		for _, id := range x.VariableIds {
			enc.u32(uint32(id))
		}

	default:
		return fmt.Errorf("traceio: unknown rvalue type %T", r)
	}
	return nil
}

func decodeRValue(dec *bufDecoder) (tracetypes.RValue, error) {
	tag, err := dec.byteVal()
	if err != nil {
		return nil, err
	}
	switch tag {
	case rtagSimple:
		vid, err := dec.u32()
		if err != nil {
			return nil, err
		}
		return tracetypes.SimpleRValue{VariableId: tracetypes.VariableId(vid)}, nil

	case rtagCompound:
		n, err := dec.u32()
		if err != nil {
			return nil, err
		}
		ids := make([]tracetypes.VariableId, n)
		for i := range ids {
			v, err := dec.u32()
			if err != nil {
				return nil, err
			}
			ids[i] = tracetypes.VariableId(v)
		}
		return tracetypes.CompoundRValue{VariableIds: ids}, nil

	default:
		return nil, fmt.Errorf("traceio: unknown rvalue tag %d", tag)
	}
}
