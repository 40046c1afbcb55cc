package traceio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufEncoderDecoderRoundTrip(t *testing.T) {
	enc := &bufEncoder{}
	enc.byte(0xAB)
	enc.boolean(true)
	enc.u32(123456)
	enc.i64(-987654321)
	enc.f64(3.14159)
	enc.lenString("hello")
	enc.stringList([]string{"a", "bb", "ccc"})

	dec := &bufDecoder{buf: enc.buf}

	b, err := dec.byteVal()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)

	bo, err := dec.boolean()
	require.NoError(t, err)
	require.True(t, bo)

	u, err := dec.u32()
	require.NoError(t, err)
	require.Equal(t, uint32(123456), u)

	i, err := dec.i64()
	require.NoError(t, err)
	require.Equal(t, int64(-987654321), i)

	f, err := dec.f64()
	require.NoError(t, err)
	require.InDelta(t, 3.14159, f, 1e-9)

	s, err := dec.lenString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	list, err := dec.stringList()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "bb", "ccc"}, list)

	require.Empty(t, dec.buf)
}

func TestBufDecoderTruncation(t *testing.T) {
	dec := &bufDecoder{buf: []byte{1, 2}}
	_, err := dec.u32()
	require.True(t, errors.Is(err, ErrTruncated))
}
