package bencode

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCBORBridge_RoundTrip(t *testing.T) {
	values := []*Value{
		Integer(0),
		Integer(-9223372036854775808),
		Integer(9223372036854775807),
		Bytes([]byte{0x00, 0xff}),
		Bytes([]byte("plain text")),
		List(Integer(1), List(), Dict()),
		Dict(
			Entry("name", Str("artifact")),
			Entry("pieces", Bytes([]byte{0xde, 0xad})),
			Entry("sizes", List(Integer(4096), Integer(8192))),
		),
	}

	for _, v := range values {
		data, err := ToCBOR(v)
		require.NoError(t, err)

		back, err := FromCBOR(data)
		require.NoError(t, err)
		assert.True(t, v.Equal(back), "CBOR round trip changed the value")
	}
}

func TestToCBOR_Deterministic(t *testing.T) {
	// Deterministic encoding mirrors bencode canonical form: equal
	// values produce identical CBOR bytes regardless of insertion
	// order.
	a := Dict(Entry("x", Integer(1)), Entry("y", Integer(2)))
	b := Dict(Entry("y", Integer(2)), Entry("x", Integer(1)))

	ca, err := ToCBOR(a)
	require.NoError(t, err)
	cb, err := ToCBOR(b)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}

func TestFromCBOR_Unrepresentable(t *testing.T) {
	encode := func(v any) []byte {
		data, err := cbor.Marshal(v)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"bool", encode(true)},
		{"null", encode(nil)},
		{"float", encode(3.14)},
		{"uint64 overflow", encode(uint64(1) << 63)},
		{"nested float", encode([]any{1, 2.5})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCBOR(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestFromCBOR_Malformed(t *testing.T) {
	_, err := FromCBOR([]byte{0xff, 0xff})
	assert.Error(t, err)
}
