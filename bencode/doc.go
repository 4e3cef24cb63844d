// Package bencode implements the bencode serialization format: a
// compact, self-delimiting encoding of integers, byte strings, lists,
// and dictionaries inside a single contiguous byte buffer.
//
// Bencode is designed to be:
//   - Self-delimiting (no separators; adjacency alone delimits siblings)
//   - Canonical (two equal values always encode to identical bytes)
//   - Byte-exact (byte strings carry raw bytes, no text interpretation)
//   - Cheap to re-synchronize (every value knows its encoded length)
//
// # Wire Grammar
//
//	value    ::= integer | string | list | dict
//	integer  ::= 'i' intlit 'e'
//	intlit   ::= '0' | '-'? nonzero digit*
//	string   ::= uintlit ':' <uintlit raw bytes>
//	uintlit  ::= '0' | nonzero digit*
//	list     ::= 'l' value* 'e'
//	dict     ::= 'd' (string value)* 'e'
//
// Dictionary keys are byte strings, unique, and always emitted in
// ascending byte-lexicographic order. Integers forbid leading zeros
// and negative zero, so every accepted scalar has exactly one spelling.
//
// # Example
//
//	d3:bar4:spam3:fooi42ee
//
// decodes to the dictionary {"bar": "spam", "foo": 42}, and encoding
// that dictionary reproduces the same bytes regardless of the order
// its keys were inserted in.
//
// # Decoding
//
// Decode is fail-fast: the first structural error aborts the whole
// decode and returns a *DecodeError carrying the offending offset and
// an ErrorKind. Partial trees are never returned. Integers are capped
// at int64; literals outside that range fail with ErrIntegerOverflow
// rather than truncating. Nesting is capped at MaxDepth.
//
// The codec is purely functional over immutable inputs: no global
// state, no logging, no I/O. Concurrent Decode/Encode calls are
// independent and reentrant.
package bencode
