package bencode

import (
	"testing"
)

// ============================================================
// Encoder Tests
// ============================================================

func TestEncode_Scalars(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"zero", Integer(0), "i0e"},
		{"positive", Integer(42), "i42e"},
		{"negative", Integer(-1), "i-1e"},
		{"max int64", Integer(9223372036854775807), "i9223372036854775807e"},
		{"min int64", Integer(-9223372036854775808), "i-9223372036854775808e"},
		{"string", Str("spam"), "4:spam"},
		{"empty string", Str(""), "0:"},
		{"binary string", Bytes([]byte{0x00, 0xff}), "2:\x00\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Encode(tt.v)); got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_Containers(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"empty list", List(), "le"},
		{"empty dict", Dict(), "de"},
		{"list", List(Str("spam"), Integer(42)), "l4:spami42ee"},
		{
			"dict",
			Dict(Entry("bar", Str("spam")), Entry("foo", Integer(42))),
			"d3:bar4:spam3:fooi42ee",
		},
		{
			"nested",
			Dict(Entry("l", List(Integer(1), List(), Dict()))),
			"d1:lli1eledeee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Encode(tt.v)); got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_CanonicalKeyOrder(t *testing.T) {
	// Insertion order never leaks into the output: the same entries
	// inserted in any order produce identical bytes.
	forward := Dict(
		Entry("bar", Str("spam")),
		Entry("foo", Integer(42)),
	)
	reverse := Dict(
		Entry("foo", Integer(42)),
		Entry("bar", Str("spam")),
	)

	fw, rv := Encode(forward), Encode(reverse)
	if string(fw) != string(rv) {
		t.Errorf("insertion order leaked: %q vs %q", fw, rv)
	}
	if string(fw) != "d3:bar4:spam3:fooi42ee" {
		t.Errorf("non-canonical output: %q", fw)
	}
}

func TestEncode_ByteWiseKeyOrder(t *testing.T) {
	// Ordering is byte-lexicographic, not locale or length aware:
	// "Z" (0x5A) sorts before "a" (0x61), and "ab" before "b".
	v := Dict(
		Entry("a", Integer(1)),
		Entry("Z", Integer(2)),
		Entry("ab", Integer(3)),
		Entry("b", Integer(4)),
	)
	want := "d1:Zi2e1:ai1e2:abi3e1:bi4ee"
	if got := string(Encode(v)); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncode_AppendEncode(t *testing.T) {
	dst := []byte("prefix:")
	dst = AppendEncode(dst, Integer(7))
	if string(dst) != "prefix:i7e" {
		t.Errorf("AppendEncode = %q", dst)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []*Value{
		Integer(0),
		Integer(-9223372036854775808),
		Str(""),
		Bytes([]byte{0x00, 0x01, 0xfe, 0xff}),
		List(),
		Dict(),
		List(Integer(1), Str("two"), List(Integer(3)), Dict(Entry("k", Str("v")))),
		Dict(
			Entry("announce", Str("udp://tracker.example.org:6969")),
			Entry("info", Dict(
				Entry("length", Integer(1048576)),
				Entry("name", Str("artifact.bin")),
				Entry("piece length", Integer(262144)),
			)),
		),
	}

	for _, v := range values {
		encoded := Encode(v)
		decoded, n, err := DecodeAt(encoded, 0)
		if err != nil {
			t.Fatalf("round trip decode of %q: %v", encoded, err)
		}
		if n != len(encoded) {
			t.Errorf("consumed %d of %d bytes", n, len(encoded))
		}
		if !decoded.Equal(v) {
			t.Errorf("round trip changed value: %q", encoded)
		}
		if again := Encode(decoded); string(again) != string(encoded) {
			t.Errorf("re-encode not canonical: %q vs %q", again, encoded)
		}
	}
}
