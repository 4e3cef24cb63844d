package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// MaxDepth is the maximum container nesting the decoder accepts.
// Recursion depth equals nesting depth of the input, so the cap keeps
// adversarial inputs from exhausting the stack. Real-world metainfo
// files nest a handful of levels.
const MaxDepth = 512

// Decode decodes one bencode value from the start of data. Trailing
// bytes after the value are ignored; use DecodeAt and compare the
// consumed count to detect them.
func Decode(data []byte) (*Value, error) {
	v, _, err := DecodeAt(data, 0)
	return v, err
}

// DecodeAt decodes one bencode value from data starting at off,
// returning the value and the number of bytes consumed. The decode is
// fail-fast: the first structural error aborts and returns a
// *DecodeError; partial trees are never returned.
func DecodeAt(data []byte, off int) (*Value, int, error) {
	if len(data) == 0 {
		return nil, 0, decodeErr(ErrEmptyInput, 0, "")
	}
	if off < 0 || off >= len(data) {
		return nil, 0, decodeErr(ErrOutOfRange, off, "buffer length "+strconv.Itoa(len(data)))
	}
	return decodeValue(data, off, 0)
}

// decodeValue decodes one value at off. Its only state is the cursor
// offset threaded through each call; there is no backtracking and no
// re-reading of already-consumed bytes.
func decodeValue(data []byte, off, depth int) (*Value, int, error) {
	if off >= len(data) {
		return nil, 0, decodeErr(ErrOutOfRange, off, "")
	}
	switch c := data[off]; {
	case c == 'i':
		return decodeInteger(data, off)
	case c == 'l':
		return decodeList(data, off, depth)
	case c == 'd':
		return decodeDict(data, off, depth)
	case isDigit(c):
		return decodeString(data, off)
	default:
		return nil, 0, decodeErr(ErrUnexpectedCharacter, off, strconv.QuoteRune(rune(c)))
	}
}

// decodeInteger decodes 'i' intlit 'e' at off.
func decodeInteger(data []byte, off int) (*Value, int, error) {
	idx := bytes.IndexByte(data[off+1:], 'e')
	if idx < 0 {
		return nil, 0, decodeErr(ErrUnterminatedInteger, off, "")
	}
	lit := data[off+1 : off+1+idx]
	if !validIntLiteral(lit) {
		return nil, 0, decodeErr(ErrInvalidIntegerFormat, off+1, strconv.Quote(string(lit)))
	}
	n, err := strconv.ParseInt(string(lit), 10, 64)
	if err != nil {
		// The literal is grammatically valid, so the only possible
		// failure is range.
		return nil, 0, decodeErr(ErrIntegerOverflow, off+1, strconv.Quote(string(lit)))
	}
	return Integer(n), idx + 2, nil
}

// decodeString decodes uintlit ':' payload at off.
func decodeString(data []byte, off int) (*Value, int, error) {
	end := scanDigits(data, off)
	if end >= len(data) || data[end] != ':' {
		return nil, 0, decodeErr(ErrMissingDelimiter, end, "")
	}
	digits := data[off:end]
	if len(digits) > 1 && digits[0] == '0' {
		return nil, 0, decodeErr(ErrInvalidStringLength, off, "leading zero in length "+strconv.Quote(string(digits)))
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, 0, decodeErr(ErrInvalidStringLength, off, "length "+strconv.Quote(string(digits))+" too large")
	}
	payloadStart := end + 1
	if int64(len(data)-payloadStart) < n {
		return nil, 0, decodeErr(ErrTruncatedPayload, off, "declared "+strconv.FormatInt(n, 10)+" bytes, have "+strconv.Itoa(len(data)-payloadStart))
	}
	// Copy so the value does not alias the caller's buffer.
	payload := make([]byte, n)
	copy(payload, data[payloadStart:payloadStart+int(n)])
	return Bytes(payload), (end - off) + 1 + int(n), nil
}

// decodeList decodes 'l' value* 'e' at off.
func decodeList(data []byte, off, depth int) (*Value, int, error) {
	if depth+1 > MaxDepth {
		return nil, 0, decodeErr(ErrNestingTooDeep, off, "exceeds MaxDepth "+strconv.Itoa(MaxDepth))
	}
	cur := off + 1
	var items []*Value
	for {
		if cur >= len(data) {
			return nil, 0, decodeErr(ErrUnterminatedList, off, "")
		}
		if data[cur] == 'e' {
			return List(items...), cur + 1 - off, nil
		}
		item, _, err := decodeValue(data, cur, depth+1)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		// Every accepted child is canonical up to dictionary ordering,
		// which does not change total length, so its encoded length
		// equals the bytes it occupied on the wire.
		cur += EncodedLen(item)
	}
}

// decodeDict decodes 'd' (string value)* 'e' at off. Keys are accepted
// in any order (many real-world producers violate strict ordering) and
// stored sorted; duplicate keys are rejected.
func decodeDict(data []byte, off, depth int) (*Value, int, error) {
	if depth+1 > MaxDepth {
		return nil, 0, decodeErr(ErrNestingTooDeep, off, "exceeds MaxDepth "+strconv.Itoa(MaxDepth))
	}
	cur := off + 1
	dict := &Value{kind: KindDict}
	for {
		if cur >= len(data) {
			return nil, 0, decodeErr(ErrUnterminatedDictionary, off, "")
		}
		if data[cur] == 'e' {
			return dict, cur + 1 - off, nil
		}
		if c := data[cur]; c == 'i' || c == 'l' || c == 'd' {
			return nil, 0, decodeErr(ErrInvalidKeyType, cur, "key must be a byte string, got "+sigilKind(c).String())
		}
		kv, _, err := decodeValue(data, cur, depth+1)
		if err != nil {
			return nil, 0, err
		}
		key := string(kv.bytesVal)
		keyOff := cur
		cur += EncodedLen(kv)

		if cur >= len(data) {
			return nil, 0, decodeErr(ErrUnterminatedDictionary, off, "key without value")
		}
		val, _, err := decodeValue(data, cur, depth+1)
		if err != nil {
			return nil, 0, err
		}
		cur += EncodedLen(val)

		if err := dictInsertUnique(dict, key, val); err != nil {
			return nil, 0, decodeErr(ErrMalformedDictionary, keyOff, "duplicate key "+strconv.Quote(key))
		}
	}
}

// dictInsertUnique inserts (key, val) into a sorted dictionary,
// failing if the key is already present.
func dictInsertUnique(dict *Value, key string, val *Value) error {
	i := sort.Search(len(dict.dictVal), func(i int) bool {
		return dict.dictVal[i].Key >= key
	})
	if i < len(dict.dictVal) && dict.dictVal[i].Key == key {
		return &ValueError{Msg: "duplicate key"}
	}
	dict.dictVal = append(dict.dictVal, DictEntry{})
	copy(dict.dictVal[i+1:], dict.dictVal[i:])
	dict.dictVal[i] = DictEntry{Key: key, Value: val}
	return nil
}

// sigilKind maps a container/integer sigil to its kind, for error
// messages only.
func sigilKind(c byte) Kind {
	switch c {
	case 'i':
		return KindInteger
	case 'l':
		return KindList
	default:
		return KindDict
	}
}
