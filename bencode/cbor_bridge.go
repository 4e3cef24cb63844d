package bencode

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes, matching bencode's own canonical-form
// guarantee.
var cborEncMode cbor.EncMode

// cborDecMode is the CBOR decoder configured to accept standard CBOR.
var cborDecMode cbor.DecMode

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bencode: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		// Bencode dictionary keys are byte strings surfaced as Go
		// strings, so any-typed map targets decode to map[string]any
		// instead of the CBOR default map[interface{}]interface{}.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bencode: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR converts a bencode value to deterministic CBOR bytes.
// Integers map to CBOR integers, byte strings to CBOR byte strings,
// lists to arrays, and dictionaries to maps with text-string keys.
func ToCBOR(v *Value) ([]byte, error) {
	native, err := toCBORValue(v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(native)
}

// FromCBOR converts CBOR bytes to a bencode value. CBOR types bencode
// cannot represent (floats, booleans, null, tags) are rejected.
func FromCBOR(data []byte) (*Value, error) {
	var native interface{}
	if err := cborDecMode.Unmarshal(data, &native); err != nil {
		return nil, fmt.Errorf("CBOR parse error: %w", err)
	}
	return fromCBORValue(native)
}

func toCBORValue(v *Value) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("nil value")
	}

	switch v.kind {
	case KindInteger:
		return v.intVal, nil

	case KindBytes:
		return v.bytesVal, nil

	case KindList:
		items := make([]interface{}, 0, len(v.listVal))
		for _, elem := range v.listVal {
			item, err := toCBORValue(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case KindDict:
		obj := make(map[string]interface{}, len(v.dictVal))
		for _, entry := range v.dictVal {
			val, err := toCBORValue(entry.Value)
			if err != nil {
				return nil, err
			}
			obj[entry.Key] = val
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unsupported value kind: %s", v.kind)
	}
}

func fromCBORValue(v interface{}) (*Value, error) {
	switch val := v.(type) {
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("CBOR integer %d overflows int64", val)
		}
		return Integer(int64(val)), nil

	case int64:
		return Integer(val), nil

	case []byte:
		return Bytes(val), nil

	case string:
		return Str(val), nil

	case []interface{}:
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			bv, err := fromCBORValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, bv)
		}
		return List(items...), nil

	case map[string]interface{}:
		dict := &Value{kind: KindDict}
		for k, elem := range val {
			bv, err := fromCBORValue(elem)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", k, err)
			}
			dict.Set(k, bv)
		}
		return dict, nil

	case bool:
		return nil, fmt.Errorf("booleans are not representable in bencode")

	case nil:
		return nil, fmt.Errorf("null is not representable in bencode")

	case float64, float32:
		return nil, fmt.Errorf("floats are not representable in bencode")

	default:
		return nil, fmt.Errorf("unsupported CBOR type: %T", v)
	}
}
