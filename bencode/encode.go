package bencode

import (
	"bytes"
	"strconv"
)

// Encode serializes v to its canonical bencode bytes. Encoding is
// total and side-effect-free for structurally valid values: two equal
// values always produce identical bytes, and dictionary keys are
// always emitted in ascending byte order. The output buffer is sized
// up front from EncodedLen, so encoding never reallocates.
func Encode(v *Value) []byte {
	e := &encoder{}
	e.buf.Grow(EncodedLen(v))
	e.encode(v)
	return e.buf.Bytes()
}

// AppendEncode appends the canonical encoding of v to dst and returns
// the extended slice.
func AppendEncode(dst []byte, v *Value) []byte {
	return append(dst, Encode(v)...)
}

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) encode(v *Value) {
	if v == nil {
		return
	}
	switch v.kind {
	case KindInteger:
		e.buf.WriteByte('i')
		e.buf.WriteString(strconv.FormatInt(v.intVal, 10))
		e.buf.WriteByte('e')

	case KindBytes:
		e.writeString(v.bytesVal)

	case KindList:
		e.buf.WriteByte('l')
		for _, item := range v.listVal {
			e.encode(item)
		}
		e.buf.WriteByte('e')

	case KindDict:
		// Entries are stored sorted, so emission order is canonical
		// by construction.
		e.buf.WriteByte('d')
		for _, entry := range v.dictVal {
			e.writeString([]byte(entry.Key))
			e.encode(entry.Value)
		}
		e.buf.WriteByte('e')
	}
}

func (e *encoder) writeString(b []byte) {
	e.buf.WriteString(strconv.Itoa(len(b)))
	e.buf.WriteByte(':')
	e.buf.Write(b)
}
