package tracetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeKindOrdinals(t *testing.T) {
	// These ordinals are wire-stable; a change here is a format break.
	cases := []struct {
		kind TypeKind
		want uint32
	}{
		{TypeKindSeq, 0},
		{TypeKindStruct, 6},
		{TypeKindInt, 7},
		{TypeKindPointer, 23},
		{TypeKindNone, 30},
		{TypeKindSlice, 33},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, uint32(c.kind))
	}
}

func TestTypeKindStringUnknown(t *testing.T) {
	assert.Equal(t, "TypeKind(99)", TypeKind(99).String())
	assert.Equal(t, "Int", TypeKindInt.String())
}

func TestEventLogKindOrdinals(t *testing.T) {
	assert.Equal(t, uint32(0), uint32(EventLogWrite))
	assert.Equal(t, uint32(12), uint32(EventLogTraceLogEvent))
	assert.Equal(t, "TraceLogEvent", EventLogTraceLogEvent.String())
}
