package bencode

import "fmt"

// ErrorKind classifies decode failures.
type ErrorKind uint8

const (
	// ErrEmptyInput: the buffer is empty.
	ErrEmptyInput ErrorKind = iota
	// ErrOutOfRange: the start offset lies outside the buffer.
	ErrOutOfRange
	// ErrUnexpectedCharacter: the leading sigil is not 'i', 'l', 'd',
	// or an ASCII digit.
	ErrUnexpectedCharacter
	// ErrUnterminatedInteger: 'i' with no matching 'e'.
	ErrUnterminatedInteger
	// ErrInvalidIntegerFormat: leading zero, negative zero, or a
	// non-digit in the integer literal.
	ErrInvalidIntegerFormat
	// ErrIntegerOverflow: the literal does not fit in int64.
	ErrIntegerOverflow
	// ErrMissingDelimiter: the byte-string length prefix is not
	// followed by ':'.
	ErrMissingDelimiter
	// ErrInvalidStringLength: the length prefix has a leading zero or
	// cannot be parsed as a non-negative length.
	ErrInvalidStringLength
	// ErrTruncatedPayload: the buffer ends before the declared
	// byte-string length.
	ErrTruncatedPayload
	// ErrUnterminatedList: the buffer ends inside a list.
	ErrUnterminatedList
	// ErrUnterminatedDictionary: the buffer ends inside a dictionary.
	ErrUnterminatedDictionary
	// ErrInvalidKeyType: a dictionary key is not a byte string.
	ErrInvalidKeyType
	// ErrMalformedDictionary: a dictionary contains a duplicate key.
	ErrMalformedDictionary
	// ErrNestingTooDeep: container nesting exceeds MaxDepth.
	ErrNestingTooDeep
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty input"
	case ErrOutOfRange:
		return "offset out of range"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnterminatedInteger:
		return "unterminated integer"
	case ErrInvalidIntegerFormat:
		return "invalid integer format"
	case ErrIntegerOverflow:
		return "integer overflow"
	case ErrMissingDelimiter:
		return "missing ':' delimiter"
	case ErrInvalidStringLength:
		return "invalid string length"
	case ErrTruncatedPayload:
		return "truncated payload"
	case ErrUnterminatedList:
		return "unterminated list"
	case ErrUnterminatedDictionary:
		return "unterminated dictionary"
	case ErrInvalidKeyType:
		return "invalid dictionary key type"
	case ErrMalformedDictionary:
		return "malformed dictionary"
	case ErrNestingTooDeep:
		return "nesting too deep"
	default:
		return "unknown error"
	}
}

// DecodeError is the typed failure returned by the decoder. Offset is
// the position of the offending byte in the input buffer.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("bencode: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
	}
	return fmt.Sprintf("bencode: %s at offset %d", e.Kind, e.Offset)
}

func decodeErr(kind ErrorKind, offset int, msg string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Msg: msg}
}

// ValueError reports misuse of the Value API (wrong-kind access,
// out-of-bounds index, nil value).
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string {
	return "bencode: " + e.Msg
}

var errNilValue = &ValueError{Msg: "nil value"}

func kindError(want, got Kind) *ValueError {
	return &ValueError{Msg: fmt.Sprintf("expected %s, got %s", want, got)}
}
