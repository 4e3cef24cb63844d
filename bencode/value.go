package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// Kind represents bencode value kinds.
type Kind uint8

const (
	KindInteger Kind = iota
	KindBytes
	KindList
	KindDict
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value represents a bencode value. It is a closed tagged union with
// exactly four variants; the kind discriminator selects which field
// is valid.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	intVal   int64
	bytesVal []byte

	// Container values
	listVal []*Value
	dictVal []DictEntry // always sorted ascending by key, keys distinct
}

// DictEntry represents a key-value pair in a dictionary. Keys are byte
// strings held as Go strings, which compare byte-wise.
type DictEntry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Integer creates an integer value.
func Integer(v int64) *Value {
	return &Value{kind: KindInteger, intVal: v}
}

// Bytes creates a byte-string value.
func Bytes(v []byte) *Value {
	return &Value{kind: KindBytes, bytesVal: v}
}

// Str creates a byte-string value from a Go string.
func Str(v string) *Value {
	return &Value{kind: KindBytes, bytesVal: []byte(v)}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{kind: KindList, listVal: values}
}

// Dict creates a dictionary value from entries. Entries are stored
// sorted ascending by key regardless of argument order; a later entry
// with a duplicate key overwrites the earlier one.
func Dict(entries ...DictEntry) *Value {
	v := &Value{kind: KindDict}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Entry creates a DictEntry for use in Dict construction.
func Entry(key string, value *Value) DictEntry {
	return DictEntry{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	return v.kind
}

// AsInteger returns the integer value.
func (v *Value) AsInteger() (int64, error) {
	if v == nil {
		return 0, errNilValue
	}
	if v.kind != KindInteger {
		return 0, kindError(KindInteger, v.kind)
	}
	return v.intVal, nil
}

// AsBytes returns the byte-string value. The returned slice is the
// value's backing storage; callers must not modify it.
func (v *Value) AsBytes() ([]byte, error) {
	if v == nil {
		return nil, errNilValue
	}
	if v.kind != KindBytes {
		return nil, kindError(KindBytes, v.kind)
	}
	return v.bytesVal, nil
}

// AsString returns the byte-string value as a Go string.
func (v *Value) AsString() (string, error) {
	b, err := v.AsBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AsList returns the list elements.
func (v *Value) AsList() ([]*Value, error) {
	if v == nil {
		return nil, errNilValue
	}
	if v.kind != KindList {
		return nil, kindError(KindList, v.kind)
	}
	return v.listVal, nil
}

// AsDict returns the dictionary entries in ascending key order.
func (v *Value) AsDict() ([]DictEntry, error) {
	if v == nil {
		return nil, errNilValue
	}
	if v.kind != KindDict {
		return nil, kindError(KindDict, v.kind)
	}
	return v.dictVal, nil
}

// Len returns the length of a list, dictionary, or byte string.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindBytes:
		return len(v.bytesVal)
	case KindList:
		return len(v.listVal)
	case KindDict:
		return len(v.dictVal)
	default:
		return 0
	}
}

// Index returns the i-th element of a list.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil {
		return nil, errNilValue
	}
	if v.kind != KindList {
		return nil, kindError(KindList, v.kind)
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, &ValueError{Msg: "index " + strconv.Itoa(i) + " out of bounds (len=" + strconv.Itoa(len(v.listVal)) + ")"}
	}
	return v.listVal[i], nil
}

// Get returns the dictionary value for key, or nil if absent or if v
// is not a dictionary. Lookup is a binary search over the sorted
// entries.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindDict {
		return nil
	}
	i := sort.Search(len(v.dictVal), func(i int) bool {
		return v.dictVal[i].Key >= key
	})
	if i < len(v.dictVal) && v.dictVal[i].Key == key {
		return v.dictVal[i].Value
	}
	return nil
}

// Has reports whether a dictionary contains key.
func (v *Value) Has(key string) bool {
	return v.Get(key) != nil
}

// Keys returns the dictionary keys in ascending byte order.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindDict {
		return nil
	}
	keys := make([]string, len(v.dictVal))
	for i, e := range v.dictVal {
		keys[i] = e.Key
	}
	return keys
}

// ============================================================
// Mutators
// ============================================================

// Set inserts or overwrites a dictionary entry, keeping entries sorted
// ascending by key. It panics on non-dictionary values.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindDict {
		panic("bencode: cannot set on non-dict")
	}
	i := sort.Search(len(v.dictVal), func(i int) bool {
		return v.dictVal[i].Key >= key
	})
	if i < len(v.dictVal) && v.dictVal[i].Key == key {
		v.dictVal[i].Value = val
		return
	}
	v.dictVal = append(v.dictVal, DictEntry{})
	copy(v.dictVal[i+1:], v.dictVal[i:])
	v.dictVal[i] = DictEntry{Key: key, Value: val}
}

// Delete removes a dictionary entry if present.
func (v *Value) Delete(key string) {
	if v == nil || v.kind != KindDict {
		return
	}
	i := sort.Search(len(v.dictVal), func(i int) bool {
		return v.dictVal[i].Key >= key
	})
	if i < len(v.dictVal) && v.dictVal[i].Key == key {
		v.dictVal = append(v.dictVal[:i], v.dictVal[i+1:]...)
	}
}

// Append adds a value to a list. It panics on non-list values.
func (v *Value) Append(val *Value) {
	if v.kind != KindList {
		panic("bencode: cannot append to non-list")
	}
	v.listVal = append(v.listVal, val)
}

// ============================================================
// Comparison and Copying
// ============================================================

// Equal reports whether two values are deeply equal. Byte strings
// compare byte-wise; dictionaries compare entry-wise, which is
// order-insensitive because entries are always sorted.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.intVal == other.intVal
	case KindBytes:
		return bytes.Equal(v.bytesVal, other.bytesVal)
	case KindList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dictVal) != len(other.dictVal) {
			return false
		}
		for i := range v.dictVal {
			if v.dictVal[i].Key != other.dictVal[i].Key {
				return false
			}
			if !v.dictVal[i].Value.Equal(other.dictVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{kind: v.kind, intVal: v.intVal}
	switch v.kind {
	case KindBytes:
		out.bytesVal = append([]byte(nil), v.bytesVal...)
	case KindList:
		out.listVal = make([]*Value, len(v.listVal))
		for i, item := range v.listVal {
			out.listVal[i] = item.Clone()
		}
	case KindDict:
		out.dictVal = make([]DictEntry, len(v.dictVal))
		for i, e := range v.dictVal {
			out.dictVal[i] = DictEntry{Key: e.Key, Value: e.Value.Clone()}
		}
	}
	return out
}
