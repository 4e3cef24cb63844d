package bencode

import (
	"strings"
	"testing"
)

// ============================================================
// Decoder Tests
// ============================================================

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		input    string
		want     *Value
		consumed int
	}{
		{"i42e", Integer(42), 4},
		{"i0e", Integer(0), 3},
		{"i-1e", Integer(-1), 4},
		{"i-3141592e", Integer(-3141592), 10},
		{"i9223372036854775807e", Integer(9223372036854775807), 21},
		{"i-9223372036854775808e", Integer(-9223372036854775808), 22},
		{"4:spam", Str("spam"), 6},
		{"0:", Str(""), 2},
		{"10:aaaaaaaaaa", Str("aaaaaaaaaa"), 13},
		{"3:i1e", Str("i1e"), 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, n, err := DecodeAt([]byte(tt.input), 0)
			if err != nil {
				t.Fatalf("DecodeAt failed: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("value mismatch: got %s", v.Kind())
			}
			if n != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", n, tt.consumed)
			}
		})
	}
}

func TestDecode_Containers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     *Value
		consumed int
	}{
		{"empty list", "le", List(), 2},
		{"empty dict", "de", Dict(), 2},
		{"list", "l4:spami42ee", List(Str("spam"), Integer(42)), 12},
		{"nested list", "lli1eeli2eee", List(List(Integer(1)), List(Integer(2))), 12},
		{
			"dict", "d3:bar4:spam3:fooi42ee",
			Dict(Entry("bar", Str("spam")), Entry("foo", Integer(42))),
			22,
		},
		{
			"dict of containers", "d4:listli1ei2ee3:mapd1:ai0eee",
			Dict(
				Entry("list", List(Integer(1), Integer(2))),
				Entry("map", Dict(Entry("a", Integer(0)))),
			),
			29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, err := DecodeAt([]byte(tt.input), 0)
			if err != nil {
				t.Fatalf("DecodeAt failed: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("value mismatch")
			}
			if n != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", n, tt.consumed)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"empty input", "", ErrEmptyInput},
		{"bad sigil", "x42e", ErrUnexpectedCharacter},
		{"unterminated integer", "i42", ErrUnterminatedInteger},
		{"empty integer", "ie", ErrInvalidIntegerFormat},
		{"negative zero", "i-0e", ErrInvalidIntegerFormat},
		{"leading zero", "i012e", ErrInvalidIntegerFormat},
		{"bare minus", "i-e", ErrInvalidIntegerFormat},
		{"non-digit in integer", "i4x2e", ErrInvalidIntegerFormat},
		{"double minus", "i--1e", ErrInvalidIntegerFormat},
		{"overflow", "i9223372036854775808e", ErrIntegerOverflow},
		{"underflow", "i-9223372036854775809e", ErrIntegerOverflow},
		{"missing colon", "4spam", ErrMissingDelimiter},
		{"digits to end of buffer", "123", ErrMissingDelimiter},
		{"leading zero length", "05:abcde", ErrInvalidStringLength},
		{"huge length", "99999999999999999999:a", ErrInvalidStringLength},
		{"truncated payload", "5:abc", ErrTruncatedPayload},
		{"unterminated list", "li1e", ErrUnterminatedList},
		{"unterminated dict", "d3:foo", ErrUnterminatedDictionary},
		{"dict key without value", "d3:fooe", ErrUnexpectedCharacter},
		{"integer key", "di1ei2ee", ErrInvalidKeyType},
		{"list key", "dlei2ee", ErrInvalidKeyType},
		{"dict key", "ddei2ee", ErrInvalidKeyType},
		{"duplicate key", "d3:fooi1e3:fooi2ee", ErrMalformedDictionary},
		{"child error propagates", "lli-0eee", ErrInvalidIntegerFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAt([]byte(tt.input), 0)
			if err == nil {
				t.Fatalf("expected error, got none")
			}
			de, ok := err.(*DecodeError)
			if !ok {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if de.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", de.Kind, tt.kind)
			}
		})
	}
}

func TestDecode_ErrorOffsets(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"x", 0},
		{"i-0e", 1},     // offending literal starts after 'i'
		{"4spam", 1},    // boundary where ':' was expected
		{"l4:spamxe", 7}, // bad sigil inside the list
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, _, err := DecodeAt([]byte(tt.input), 0)
			de, ok := err.(*DecodeError)
			if !ok {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if de.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", de.Offset, tt.offset)
			}
		})
	}
}

func TestDecodeAt_Offsets(t *testing.T) {
	// Two adjacent values in one buffer: the cursor API decodes each
	// independently.
	data := []byte("i42e4:spam")

	v1, n1, err := DecodeAt(data, 0)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	if !v1.Equal(Integer(42)) || n1 != 4 {
		t.Errorf("first value: consumed %d", n1)
	}

	v2, n2, err := DecodeAt(data, n1)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !v2.Equal(Str("spam")) || n2 != 6 {
		t.Errorf("second value: consumed %d", n2)
	}
}

func TestDecodeAt_BadOffset(t *testing.T) {
	for _, off := range []int{-1, 4, 100} {
		_, _, err := DecodeAt([]byte("i42e"), off)
		de, ok := err.(*DecodeError)
		if !ok || de.Kind != ErrOutOfRange {
			t.Errorf("offset %d: expected out-of-range, got %v", off, err)
		}
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	v, err := Decode([]byte("i42etrailing-garbage"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !v.Equal(Integer(42)) {
		t.Errorf("value mismatch")
	}
}

func TestDecode_OutOfOrderKeysResorted(t *testing.T) {
	// Many real-world producers emit unsorted dictionaries; decode
	// accepts them and the stored tree re-sorts, so re-encoding is
	// canonical.
	v, err := Decode([]byte("d3:fooi42e3:bar4:spame"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	keys := v.Keys()
	if len(keys) != 2 || keys[0] != "bar" || keys[1] != "foo" {
		t.Errorf("keys = %v, want [bar foo]", keys)
	}
	if got := string(Encode(v)); got != "d3:bar4:spam3:fooi42ee" {
		t.Errorf("re-encode = %q", got)
	}
}

func TestDecode_NestingDepth(t *testing.T) {
	deep := func(n int) []byte {
		return []byte(strings.Repeat("l", n) + strings.Repeat("e", n))
	}

	if _, err := Decode(deep(MaxDepth)); err != nil {
		t.Fatalf("depth %d should decode: %v", MaxDepth, err)
	}

	_, err := Decode(deep(MaxDepth + 1))
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrNestingTooDeep {
		t.Fatalf("depth %d: expected nesting error, got %v", MaxDepth+1, err)
	}

	// Dicts count against the same budget.
	nested := strings.Repeat("d1:k", MaxDepth) + "i0e" + strings.Repeat("e", MaxDepth)
	if _, err := Decode([]byte(nested)); err != nil {
		t.Fatalf("dict depth %d should decode: %v", MaxDepth, err)
	}
}

func TestDecode_PayloadIsCopied(t *testing.T) {
	data := []byte("4:spam")
	v, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	data[2] = 'X'
	b, _ := v.AsBytes()
	if string(b) != "spam" {
		t.Errorf("decoded value aliases the input buffer: %q", b)
	}
}

// ============================================================
// Benchmarks
// ============================================================

func benchmarkInput() []byte {
	files := List()
	for i := 0; i < 64; i++ {
		files.Append(Dict(
			Entry("length", Integer(int64(i)*4096)),
			Entry("path", List(Str("dir"), Str("file.bin"))),
		))
	}
	return Encode(Dict(
		Entry("announce", Str("udp://tracker.example.org:6969")),
		Entry("info", Dict(
			Entry("files", files),
			Entry("name", Str("artifact")),
			Entry("piece length", Integer(262144)),
		)),
	))
}

func BenchmarkDecode(b *testing.B) {
	data := benchmarkInput()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	v, err := Decode(benchmarkInput())
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(EncodedLen(v)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Encode(v)
	}
}
