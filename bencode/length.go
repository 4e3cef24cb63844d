package bencode

// EncodedLen returns the exact number of bytes the canonical encoding
// of v occupies, without materializing the encoding. For every value,
// EncodedLen(v) == len(Encode(v)); the decoder relies on this to
// advance past an already-parsed child without re-scanning it, because
// adjacency alone delimits siblings on the wire.
func EncodedLen(v *Value) int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindInteger:
		// 'i' + decimal digits + 'e'
		return intLen(v.intVal) + 2
	case KindBytes:
		// length digits + ':' + payload
		return uintLen(uint64(len(v.bytesVal))) + 1 + len(v.bytesVal)
	case KindList:
		// 'l' + children + 'e'
		n := 2
		for _, item := range v.listVal {
			n += EncodedLen(item)
		}
		return n
	case KindDict:
		// 'd' + (key string + value)* + 'e'
		n := 2
		for _, e := range v.dictVal {
			n += uintLen(uint64(len(e.Key))) + 1 + len(e.Key)
			n += EncodedLen(e.Value)
		}
		return n
	default:
		return 0
	}
}

// intLen returns the number of bytes in the decimal text of n,
// including a leading '-' for negative values.
func intLen(n int64) int {
	if n >= 0 {
		return uintLen(uint64(n))
	}
	// Negate via unsigned arithmetic so MinInt64 is handled.
	return 1 + uintLen(uint64(-(n + 1)) + 1)
}

// uintLen returns the number of decimal digits in n.
func uintLen(n uint64) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
