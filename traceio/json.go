package traceio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/metacraft-labs/runtime-tracing-go/tracetypes"
)

// EncodeJSON writes events as the pretty-printed, externally tagged
// JSON array described by the external interface: each element is a
// single-keyed object whose key names the variant.
func EncodeJSON(w io.Writer, events []tracetypes.LowLevelEvent) error {
	raws := make([]json.RawMessage, len(events))
	for i, e := range events {
		raw, err := marshalEvent(e)
		if err != nil {
			return fmt.Errorf("traceio: encode event %d: %w", i, err)
		}
		raws[i] = raw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raws); err != nil {
		return fmt.Errorf("traceio: write json events: %w", err)
	}
	return nil
}

// DecodeJSON parses the JSON array form back into an event vector.
func DecodeJSON(r io.Reader) ([]tracetypes.LowLevelEvent, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("traceio: parse json events: %w", err)
	}
	events := make([]tracetypes.LowLevelEvent, len(raws))
	for i, raw := range raws {
		e, err := unmarshalEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("traceio: decode event %d: %w", i, err)
		}
		events[i] = e
	}
	return events, nil
}

func tagged(key string, payload interface{}) (json.RawMessage, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{key: p})
}

func marshalEvent(e tracetypes.LowLevelEvent) (json.RawMessage, error) {
	switch x := e.(type) {
	case tracetypes.PathEvent:
		return tagged("Path", x.Path)

	case tracetypes.VariableNameEvent:
		return tagged("VariableName", x.Name)

	case tracetypes.TypeEvent:
		info, err := marshalTypeInfo(x.SpecificInfo)
		if err != nil {
			return nil, err
		}
		return tagged("Type", struct {
			Kind         tracetypes.TypeKind `json:"kind"`
			LangType     string              `json:"lang_type"`
			SpecificInfo json.RawMessage     `json:"specific_info"`
		}{x.Kind_, x.LangType, info})

	case tracetypes.ValueEvent:
		v, err := marshalValue(x.Value)
		if err != nil {
			return nil, err
		}
		return tagged("Value", struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Value      json.RawMessage       `json:"value"`
		}{x.VariableId, v})

	case tracetypes.FunctionEvent:
		return tagged("Function", struct {
			PathId tracetypes.PathId `json:"path_id"`
			Line   int64             `json:"line"`
			Name   string            `json:"name"`
		}{x.PathId, x.Line, x.Name})

	case tracetypes.StepEvent:
		return tagged("Step", struct {
			PathId tracetypes.PathId `json:"path_id"`
			Line   int64             `json:"line"`
		}{x.PathId, x.Line})

	case tracetypes.CallEvent:
		args, err := marshalFullValues(x.Args)
		if err != nil {
			return nil, err
		}
		return tagged("Call", struct {
			FunctionId tracetypes.FunctionId `json:"function_id"`
			Args       []json.RawMessage     `json:"args"`
		}{x.FunctionId, args})

	case tracetypes.ReturnEvent:
		v, err := marshalValue(x.ReturnValue)
		if err != nil {
			return nil, err
		}
		return tagged("Return", struct {
			ReturnValue json.RawMessage `json:"return_value"`
		}{v})

	case tracetypes.EventLogEvent:
		return tagged("Event", struct {
			Kind     tracetypes.EventLogKind `json:"kind"`
			Metadata string                  `json:"metadata"`
			Content  string                  `json:"content"`
		}{x.EventKind, x.Metadata, x.Content})

	case tracetypes.AsmEvent:
		return tagged("Asm", x.Instructions)

	case tracetypes.BindVariableEvent:
		return tagged("BindVariable", struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Place      tracetypes.Place      `json:"place"`
		}{x.VariableId, x.Place})

	case tracetypes.AssignmentEvent:
		from, err := marshalRValue(x.From)
		if err != nil {
			return nil, err
		}
		return tagged("Assignment", struct {
			To     tracetypes.VariableId `json:"to"`
			PassBy tracetypes.PassBy     `json:"pass_by"`
			From   json.RawMessage       `json:"from"`
		}{x.To, x.PassBy, from})

	case tracetypes.DropVariablesEvent:
		return tagged("DropVariables", x.VariableIds)

	case tracetypes.CompoundValueEvent:
		v, err := marshalValue(x.Value)
		if err != nil {
			return nil, err
		}
		return tagged("CompoundValue", struct {
			Place tracetypes.Place `json:"place"`
			Value json.RawMessage `json:"value"`
		}{x.Place, v})

	case tracetypes.CellValueEvent:
		v, err := marshalValue(x.Value)
		if err != nil {
			return nil, err
		}
		return tagged("CellValue", struct {
			Place tracetypes.Place `json:"place"`
			Value json.RawMessage `json:"value"`
		}{x.Place, v})

	case tracetypes.AssignCompoundItemEvent:
		return tagged("AssignCompoundItem", struct {
			Place     tracetypes.Place `json:"place"`
			Index     int64            `json:"index"`
			ItemPlace tracetypes.Place `json:"item_place"`
		}{x.Place, x.Index, x.ItemPlace})

	case tracetypes.AssignCellEvent:
		v, err := marshalValue(x.NewValue)
		if err != nil {
			return nil, err
		}
		return tagged("AssignCell", struct {
			Place    tracetypes.Place `json:"place"`
			NewValue json.RawMessage `json:"new_value"`
		}{x.Place, v})

	case tracetypes.VariableCellEvent:
		return tagged("VariableCell", struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Place      tracetypes.Place      `json:"place"`
		}{x.VariableId, x.Place})

	case tracetypes.DropVariableEvent:
		return tagged("DropVariable", x.VariableId)

	case tracetypes.DropLastStepEvent:
		return tagged("DropLastStep", nil)

	default:
		return nil, fmt.Errorf("unknown event type %T", e)
	}
}

func marshalFullValues(args []tracetypes.FullValueRecord) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(args))
	for i, a := range args {
		v, err := marshalValue(a.Value)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Value      json.RawMessage       `json:"value"`
		}{a.VariableId, v})
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalFullValues(raws []json.RawMessage) ([]tracetypes.FullValueRecord, error) {
	out := make([]tracetypes.FullValueRecord, len(raws))
	for i, raw := range raws {
		var probe struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Value      json.RawMessage       `json:"value"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		v, err := unmarshalValue(probe.Value)
		if err != nil {
			return nil, err
		}
		out[i] = tracetypes.FullValueRecord{VariableId: probe.VariableId, Value: v}
	}
	return out, nil
}

func unmarshalEvent(raw json.RawMessage) (tracetypes.LowLevelEvent, error) {
	var wrap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrap); err != nil {
		return nil, err
	}
	if len(wrap) != 1 {
		return nil, fmt.Errorf("event object must have exactly one key, got %d", len(wrap))
	}
	var key string
	var payload json.RawMessage
	for k, v := range wrap {
		key, payload = k, v
	}

	switch key {
	case "Path":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return tracetypes.PathEvent{Path: s}, nil

	case "VariableName":
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return tracetypes.VariableNameEvent{Name: s}, nil

	case "Type":
		var v struct {
			Kind         tracetypes.TypeKind `json:"kind"`
			LangType     string              `json:"lang_type"`
			SpecificInfo json.RawMessage     `json:"specific_info"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		info, err := unmarshalTypeInfo(v.SpecificInfo)
		if err != nil {
			return nil, err
		}
		return tracetypes.TypeEvent{Kind_: v.Kind, LangType: v.LangType, SpecificInfo: info}, nil

	case "Value":
		var v struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Value      json.RawMessage       `json:"value"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		val, err := unmarshalValue(v.Value)
		if err != nil {
			return nil, err
		}
		return tracetypes.ValueEvent{VariableId: v.VariableId, Value: val}, nil

	case "Function":
		var v struct {
			PathId tracetypes.PathId `json:"path_id"`
			Line   int64             `json:"line"`
			Name   string            `json:"name"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.FunctionEvent{PathId: v.PathId, Line: v.Line, Name: v.Name}, nil

	case "Step":
		var v struct {
			PathId tracetypes.PathId `json:"path_id"`
			Line   int64             `json:"line"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.StepEvent{PathId: v.PathId, Line: v.Line}, nil

	case "Call":
		var v struct {
			FunctionId tracetypes.FunctionId `json:"function_id"`
			Args       []json.RawMessage     `json:"args"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		args, err := unmarshalFullValues(v.Args)
		if err != nil {
			return nil, err
		}
		return tracetypes.CallEvent{FunctionId: v.FunctionId, Args: args}, nil

	case "Return":
		var v struct {
			ReturnValue json.RawMessage `json:"return_value"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		val, err := unmarshalValue(v.ReturnValue)
		if err != nil {
			return nil, err
		}
		return tracetypes.ReturnEvent{ReturnValue: val}, nil

	case "Event":
		var v struct {
			Kind     tracetypes.EventLogKind `json:"kind"`
			Metadata string                  `json:"metadata"`
			Content  string                  `json:"content"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.EventLogEvent{EventKind: v.Kind, Metadata: v.Metadata, Content: v.Content}, nil

	case "Asm":
		var v []string
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.AsmEvent{Instructions: v}, nil

	case "BindVariable":
		var v struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Place      tracetypes.Place      `json:"place"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.BindVariableEvent{VariableId: v.VariableId, Place: v.Place}, nil

	case "Assignment":
		var v struct {
			To     tracetypes.VariableId `json:"to"`
			PassBy tracetypes.PassBy     `json:"pass_by"`
			From   json.RawMessage       `json:"from"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		from, err := unmarshalRValue(v.From)
		if err != nil {
			return nil, err
		}
		return tracetypes.AssignmentEvent{To: v.To, PassBy: v.PassBy, From: from}, nil

	case "DropVariables":
		var v []tracetypes.VariableId
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.DropVariablesEvent{VariableIds: v}, nil

	case "CompoundValue":
		var v struct {
			Place tracetypes.Place `json:"place"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		val, err := unmarshalValue(v.Value)
		if err != nil {
			return nil, err
		}
		return tracetypes.CompoundValueEvent{Place: v.Place, Value: val}, nil

	case "CellValue":
		var v struct {
			Place tracetypes.Place `json:"place"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		val, err := unmarshalValue(v.Value)
		if err != nil {
			return nil, err
		}
		return tracetypes.CellValueEvent{Place: v.Place, Value: val}, nil

	case "AssignCompoundItem":
		var v struct {
			Place     tracetypes.Place `json:"place"`
			Index     int64            `json:"index"`
			ItemPlace tracetypes.Place `json:"item_place"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.AssignCompoundItemEvent{Place: v.Place, Index: v.Index, ItemPlace: v.ItemPlace}, nil

	case "AssignCell":
		var v struct {
			Place    tracetypes.Place `json:"place"`
			NewValue json.RawMessage `json:"new_value"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		val, err := unmarshalValue(v.NewValue)
		if err != nil {
			return nil, err
		}
		return tracetypes.AssignCellEvent{Place: v.Place, NewValue: val}, nil

	case "VariableCell":
		var v struct {
			VariableId tracetypes.VariableId `json:"variable_id"`
			Place      tracetypes.Place      `json:"place"`
		}
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.VariableCellEvent{VariableId: v.VariableId, Place: v.Place}, nil

	case "DropVariable":
		var v tracetypes.VariableId
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		return tracetypes.DropVariableEvent{VariableId: v}, nil

	case "DropLastStep":
		return tracetypes.DropLastStepEvent{}, nil

	default:
		return nil, fmt.Errorf("unknown event key %q", key)
	}
}

func marshalValue(v tracetypes.ValueRecord) (json.RawMessage, error) {
	switch x := v.(type) {
	case tracetypes.IntValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			I      int64           `json:"i"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Int", x.I, x.TypeId})

	case tracetypes.Int128Value:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			I      string          `json:"i"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Int128", x.I, x.TypeId})

	case tracetypes.FloatValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			F      float64         `json:"f"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Float", x.F, x.TypeId})

	case tracetypes.BoolValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			B      bool            `json:"b"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Bool", x.B, x.TypeId})

	case tracetypes.StringValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			Text   string          `json:"text"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"String", x.Text, x.TypeId})

	case tracetypes.SequenceValue:
		elems, err := marshalValues(x.Elements)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Kind     string            `json:"kind"`
			Elements []json.RawMessage `json:"elements"`
			IsSlice  bool              `json:"is_slice"`
			TypeId   tracetypes.TypeId `json:"type_id"`
		}{"Sequence", elems, x.IsSlice, x.TypeId})

	case tracetypes.TupleValue:
		elems, err := marshalValues(x.Elements)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Kind     string            `json:"kind"`
			Elements []json.RawMessage `json:"elements"`
			TypeId   tracetypes.TypeId `json:"type_id"`
		}{"Tuple", elems, x.TypeId})

	case tracetypes.StructValue:
		fields, err := marshalValues(x.FieldValues)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Kind        string            `json:"kind"`
			FieldValues []json.RawMessage `json:"field_values"`
			TypeId      tracetypes.TypeId `json:"type_id"`
		}{"Struct", fields, x.TypeId})

	case tracetypes.VariantValue:
		contents, err := marshalValue(x.Contents)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Kind          string            `json:"kind"`
			Discriminator string            `json:"discriminator"`
			Contents      json.RawMessage   `json:"contents"`
			TypeId        tracetypes.TypeId `json:"type_id"`
		}{"Variant", x.Discriminator, contents, x.TypeId})

	case tracetypes.ReferenceValue:
		deref, err := marshalValue(x.Dereferenced)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Kind         string            `json:"kind"`
			Dereferenced json.RawMessage   `json:"dereferenced"`
			Address      uint64            `json:"address"`
			Mutable      bool              `json:"mutable"`
			TypeId       tracetypes.TypeId `json:"type_id"`
		}{"Reference", deref, x.Address, x.Mutable, x.TypeId})

	case tracetypes.RawValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			R      string          `json:"r"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Raw", x.R, x.TypeId})

	case tracetypes.ErrorValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			Msg    string          `json:"msg"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"Error", x.Msg, x.TypeId})

	case tracetypes.NoneValue:
		return json.Marshal(struct {
			Kind   string          `json:"kind"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}{"None", x.TypeId})

	case tracetypes.CellValue:
		return json.Marshal(struct {
			Kind  string           `json:"kind"`
			Place tracetypes.Place `json:"place"`
		}{"Cell", x.Place})

	default:
		return nil, fmt.Errorf("unknown value record type %T", v)
	}
}

func marshalValues(vs []tracetypes.ValueRecord) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(vs))
	for i, v := range vs {
		raw, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func unmarshalValues(raws []json.RawMessage) ([]tracetypes.ValueRecord, error) {
	out := make([]tracetypes.ValueRecord, len(raws))
	for i, raw := range raws {
		v, err := unmarshalValue(raw)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func unmarshalValue(raw json.RawMessage) (tracetypes.ValueRecord, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch probe.Kind {
	case "Int":
		var v struct {
			I      int64             `json:"i"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.IntValue{I: v.I, TypeId: v.TypeId}, nil

	case "Int128":
		var v struct {
			I      string            `json:"i"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.Int128Value{I: v.I, TypeId: v.TypeId}, nil

	case "Float":
		var v struct {
			F      float64           `json:"f"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.FloatValue{F: v.F, TypeId: v.TypeId}, nil

	case "Bool":
		var v struct {
			B      bool              `json:"b"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.BoolValue{B: v.B, TypeId: v.TypeId}, nil

	case "String":
		var v struct {
			Text   string            `json:"text"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.StringValue{Text: v.Text, TypeId: v.TypeId}, nil

	case "Sequence":
		var v struct {
			Elements []json.RawMessage `json:"elements"`
			IsSlice  bool              `json:"is_slice"`
			TypeId   tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		elems, err := unmarshalValues(v.Elements)
		if err != nil {
			return nil, err
		}
		return tracetypes.SequenceValue{Elements: elems, IsSlice: v.IsSlice, TypeId: v.TypeId}, nil

	case "Tuple":
		var v struct {
			Elements []json.RawMessage `json:"elements"`
			TypeId   tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		elems, err := unmarshalValues(v.Elements)
		if err != nil {
			return nil, err
		}
		return tracetypes.TupleValue{Elements: elems, TypeId: v.TypeId}, nil

	case "Struct":
		var v struct {
			FieldValues []json.RawMessage `json:"field_values"`
			TypeId      tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		fields, err := unmarshalValues(v.FieldValues)
		if err != nil {
			return nil, err
		}
		return tracetypes.StructValue{FieldValues: fields, TypeId: v.TypeId}, nil

	case "Variant":
		var v struct {
			Discriminator string            `json:"discriminator"`
			Contents      json.RawMessage   `json:"contents"`
			TypeId        tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		contents, err := unmarshalValue(v.Contents)
		if err != nil {
			return nil, err
		}
		return tracetypes.VariantValue{Discriminator: v.Discriminator, Contents: contents, TypeId: v.TypeId}, nil

	case "Reference":
		var v struct {
			Dereferenced json.RawMessage   `json:"dereferenced"`
			Address      uint64            `json:"address"`
			Mutable      bool              `json:"mutable"`
			TypeId       tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		deref, err := unmarshalValue(v.Dereferenced)
		if err != nil {
			return nil, err
		}
		return tracetypes.ReferenceValue{Dereferenced: deref, Address: v.Address, Mutable: v.Mutable, TypeId: v.TypeId}, nil

	case "Raw":
		var v struct {
			R      string            `json:"r"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.RawValue{R: v.R, TypeId: v.TypeId}, nil

	case "Error":
		var v struct {
			Msg    string            `json:"msg"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.ErrorValue{Msg: v.Msg, TypeId: v.TypeId}, nil

	case "None":
		var v struct {
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.NoneValue{TypeId: v.TypeId}, nil

	case "Cell":
		var v struct {
			Place tracetypes.Place `json:"place"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.CellValue{Place: v.Place}, nil

	default:
		return nil, fmt.Errorf("unknown value kind %q", probe.Kind)
	}
}

func marshalTypeInfo(info tracetypes.TypeSpecificInfo) (json.RawMessage, error) {
	switch x := info.(type) {
	case nil, tracetypes.NoneTypeInfo:
		return json.Marshal(struct {
			Kind string `json:"kind"`
		}{"None"})

	case tracetypes.StructTypeInfo:
		type fieldJSON struct {
			Name   string            `json:"name"`
			TypeId tracetypes.TypeId `json:"type_id"`
		}
		fields := make([]fieldJSON, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = fieldJSON{f.Name, f.TypeId}
		}
		return json.Marshal(struct {
			Kind   string      `json:"kind"`
			Fields []fieldJSON `json:"fields"`
		}{"Struct", fields})

	case tracetypes.PointerTypeInfo:
		return json.Marshal(struct {
			Kind              string            `json:"kind"`
			DereferenceTypeId tracetypes.TypeId `json:"dereference_type_id"`
		}{"Pointer", x.DereferenceTypeId})

	default:
		return nil, fmt.Errorf("unknown type specific info %T", info)
	}
}

func unmarshalTypeInfo(raw json.RawMessage) (tracetypes.TypeSpecificInfo, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch probe.Kind {
	case "None", "":
		return tracetypes.NoneTypeInfo{}, nil
	case "Struct":
		var v struct {
			Fields []struct {
				Name   string            `json:"name"`
				TypeId tracetypes.TypeId `json:"type_id"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		fields := make([]tracetypes.StructField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = tracetypes.StructField{Name: f.Name, TypeId: f.TypeId}
		}
		return tracetypes.StructTypeInfo{Fields: fields}, nil
	case "Pointer":
		var v struct {
			DereferenceTypeId tracetypes.TypeId `json:"dereference_type_id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.PointerTypeInfo{DereferenceTypeId: v.DereferenceTypeId}, nil
	default:
		return nil, fmt.Errorf("unknown type specific info kind %q", probe.Kind)
	}
}

func marshalRValue(r tracetypes.RValue) (json.RawMessage, error) {
	switch x := r.(type) {
	case tracetypes.SimpleRValue:
		return json.Marshal(struct {
			Kind string                `json:"kind"`
			Zero tracetypes.VariableId `json:"0"`
		}{"Simple", x.VariableId})

	case tracetypes.CompoundRValue:
		return json.Marshal(struct {
			Kind string                  `json:"kind"`
			Zero []tracetypes.VariableId `json:"0"`
		}{"Compound", x.VariableIds})

	default:
		return nil, fmt.Errorf("unknown rvalue type %T", r)
	}
}

func unmarshalRValue(raw json.RawMessage) (tracetypes.RValue, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch probe.Kind {
	case "Simple":
		var v struct {
			Zero tracetypes.VariableId `json:"0"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.SimpleRValue{VariableId: v.Zero}, nil
	case "Compound":
		var v struct {
			Zero []tracetypes.VariableId `json:"0"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return tracetypes.CompoundRValue{VariableIds: v.Zero}, nil
	default:
		return nil, fmt.Errorf("unknown rvalue kind %q", probe.Kind)
	}
}
