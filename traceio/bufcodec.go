package traceio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// bufEncoder is the write-side counterpart of perffile's bufDecoder:
// a small cursor that appends fixed-width and length-prefixed fields
// to a growable byte slice, rather than reading them from one.
type bufEncoder struct {
	buf []byte
}

func (b *bufEncoder) byte(x byte) {
	b.buf = append(b.buf, x)
}

func (b *bufEncoder) boolean(x bool) {
	if x {
		b.byte(1)
	} else {
		b.byte(0)
	}
}

func (b *bufEncoder) u32(x uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], x)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *bufEncoder) i32(x int32) {
	b.u32(uint32(x))
}

func (b *bufEncoder) u64(x uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], x)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *bufEncoder) i64(x int64) {
	b.u64(uint64(x))
}

func (b *bufEncoder) f64(x float64) {
	b.u64(math.Float64bits(x))
}

// lenString writes a uint32 byte length followed by the raw bytes, as
// perffile's bufDecoder.lenString reads them back.
func (b *bufEncoder) lenString(s string) {
	b.u32(uint32(len(s)))
	b.buf = append(b.buf, s...)
}

func (b *bufEncoder) stringList(ss []string) {
	b.u32(uint32(len(ss)))
	for _, s := range ss {
		b.lenString(s)
	}
}

// bufDecoder mirrors perffile's bufDecoder: a cursor over a byte
// slice that advances as each field is read. Unlike the perf.data
// reader, ours returns errors instead of silently truncating, since a
// malformed trace file is a Format error to be reported, not ignored.
type bufDecoder struct {
	buf []byte
}

func (b *bufDecoder) need(n int) error {
	if len(b.buf) < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, len(b.buf))
	}
	return nil
}

func (b *bufDecoder) byteVal() (byte, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	x := b.buf[0]
	b.buf = b.buf[1:]
	return x, nil
}

func (b *bufDecoder) boolean() (bool, error) {
	x, err := b.byteVal()
	return x != 0, err
}

func (b *bufDecoder) u32() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint32(b.buf)
	b.buf = b.buf[4:]
	return x, nil
}

func (b *bufDecoder) i32() (int32, error) {
	x, err := b.u32()
	return int32(x), err
}

func (b *bufDecoder) u64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint64(b.buf)
	b.buf = b.buf[8:]
	return x, nil
}

func (b *bufDecoder) i64() (int64, error) {
	x, err := b.u64()
	return int64(x), err
}

func (b *bufDecoder) f64() (float64, error) {
	x, err := b.u64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(x), nil
}

func (b *bufDecoder) lenString() (string, error) {
	l, err := b.u32()
	if err != nil {
		return "", err
	}
	if err := b.need(int(l)); err != nil {
		return "", err
	}
	s := string(b.buf[:l])
	b.buf = b.buf[l:]
	return s, nil
}

func (b *bufDecoder) stringList() ([]string, error) {
	count, err := b.u32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		s, err := b.lenString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
