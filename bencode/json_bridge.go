package bencode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and bencode values for inspection tooling.
// Supports two modes:
//   - Strict (default): byte strings become JSON strings (base64 when
//     not valid UTF-8), fully JSON compatible but lossy
//   - Extended: non-UTF-8 byte strings use a $bytes marker object for
//     lossless round-trip

// BridgeOpts configures JSON bridge behavior.
type BridgeOpts struct {
	// Extended enables {"$bytes": "<base64>"} markers for lossless
	// round-trip of non-UTF-8 byte strings. When false (default),
	// those byte strings are converted to plain base64 strings.
	Extended bool
}

// DefaultBridgeOpts returns the default (strict/JSON-compatible) options.
func DefaultBridgeOpts() BridgeOpts {
	return BridgeOpts{Extended: false}
}

// ============================================================
// FromJSON - JSON to bencode Value
// ============================================================

// FromJSON converts JSON bytes to a bencode value using strict mode.
// JSON values bencode cannot represent (booleans, null, non-integral
// numbers) are rejected.
func FromJSON(data []byte) (*Value, error) {
	return FromJSONWithOpts(data, DefaultBridgeOpts())
}

// FromJSONWithOpts converts JSON bytes to a bencode value with options.
func FromJSONWithOpts(data []byte, opts BridgeOpts) (*Value, error) {
	// UseNumber keeps integer literals exact; float64 would silently
	// round values above 2^53.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return fromJSONValue(v, opts)
}

func fromJSONValue(v interface{}, opts BridgeOpts) (*Value, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("number %s is not representable as a bencode integer", val)
		}
		return Integer(n), nil

	case string:
		return Str(val), nil

	case []interface{}:
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			bv, err := fromJSONValue(elem, opts)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, bv)
		}
		return List(items...), nil

	case map[string]interface{}:
		if opts.Extended {
			if b64, ok := val["$bytes"].(string); ok && len(val) == 1 {
				raw, err := base64.StdEncoding.DecodeString(b64)
				if err != nil {
					return nil, fmt.Errorf("invalid base64 in $bytes marker: %w", err)
				}
				return Bytes(raw), nil
			}
		}
		dict := &Value{kind: KindDict}
		for k, elem := range val {
			bv, err := fromJSONValue(elem, opts)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			dict.Set(k, bv)
		}
		return dict, nil

	case bool:
		return nil, fmt.Errorf("booleans are not representable in bencode")

	case nil:
		return nil, fmt.Errorf("null is not representable in bencode")

	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", v)
	}
}

// ============================================================
// ToJSON - bencode Value to JSON
// ============================================================

// ToJSON converts a bencode value to JSON bytes using strict mode.
func ToJSON(v *Value) ([]byte, error) {
	return ToJSONWithOpts(v, DefaultBridgeOpts())
}

// ToJSONWithOpts converts a bencode value to JSON bytes with options.
func ToJSONWithOpts(v *Value, opts BridgeOpts) ([]byte, error) {
	jsonVal, err := toJSONValue(v, opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonVal)
}

func toJSONValue(v *Value, opts BridgeOpts) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("nil value")
	}

	switch v.kind {
	case KindInteger:
		return v.intVal, nil

	case KindBytes:
		if utf8.Valid(v.bytesVal) {
			return string(v.bytesVal), nil
		}
		if opts.Extended {
			return map[string]interface{}{
				"$bytes": base64.StdEncoding.EncodeToString(v.bytesVal),
			}, nil
		}
		return base64.StdEncoding.EncodeToString(v.bytesVal), nil

	case KindList:
		items := make([]interface{}, 0, len(v.listVal))
		for _, elem := range v.listVal {
			jsonElem, err := toJSONValue(elem, opts)
			if err != nil {
				return nil, err
			}
			items = append(items, jsonElem)
		}
		return items, nil

	case KindDict:
		obj := make(map[string]interface{}, len(v.dictVal))
		for _, entry := range v.dictVal {
			if !utf8.ValidString(entry.Key) {
				return nil, fmt.Errorf("dictionary key %q is not valid UTF-8", entry.Key)
			}
			jsonVal, err := toJSONValue(entry.Value, opts)
			if err != nil {
				return nil, err
			}
			obj[entry.Key] = jsonVal
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unsupported value kind: %s", v.kind)
	}
}

// ============================================================
// JSON Helpers
// ============================================================

// JSONEqual checks if two JSON byte slices represent equal values.
func JSONEqual(a, b []byte) (bool, error) {
	var va, vb interface{}
	if err := json.Unmarshal(a, &va); err != nil {
		return false, fmt.Errorf("parse a: %w", err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false, fmt.Errorf("parse b: %w", err)
	}
	return jsonValueEqual(va, vb), nil
}

func jsonValueEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch va := a.(type) {
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case float64:
		vb, ok := b.(float64)
		return ok && va == vb
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case []interface{}:
		vb, ok := b.([]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !jsonValueEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		vb, ok := b.(map[string]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, valA := range va {
			valB, exists := vb[k]
			if !exists || !jsonValueEqual(valA, valB) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
