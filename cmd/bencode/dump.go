package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bencodeio/bencode/bencode"
)

// maxBytePreview limits how much of a binary string the dump shows.
const maxBytePreview = 16

// dumpValue pretty-prints a value tree with two-space indentation.
// With stats enabled, every node is annotated with its canonical
// encoded length.
func dumpValue(w io.Writer, v *bencode.Value, depth int, stats bool) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s%s\n", indent, renderScalar(v), renderStats(v, stats))

	switch v.Kind() {
	case bencode.KindList:
		items, _ := v.AsList()
		for _, item := range items {
			dumpValue(w, item, depth+1, stats)
		}
	case bencode.KindDict:
		entries, _ := v.AsDict()
		for _, e := range entries {
			fmt.Fprintf(w, "%s  %s =>\n", indent, renderKey(e.Key))
			dumpValue(w, e.Value, depth+2, stats)
		}
	}
}

func renderScalar(v *bencode.Value) string {
	switch v.Kind() {
	case bencode.KindInteger:
		n, _ := v.AsInteger()
		return strconv.FormatInt(n, 10)
	case bencode.KindBytes:
		b, _ := v.AsBytes()
		return renderBytes(b)
	case bencode.KindList:
		return fmt.Sprintf("list (%d items)", v.Len())
	case bencode.KindDict:
		return fmt.Sprintf("dict (%d entries)", v.Len())
	default:
		return "?"
	}
}

func renderKey(key string) string {
	return renderBytes([]byte(key))
}

// renderBytes shows readable strings quoted and binary strings as a
// hex preview with their full length.
func renderBytes(b []byte) string {
	if utf8.Valid(b) && isPrintable(b) {
		return strconv.Quote(string(b))
	}
	preview := b
	ellipsis := ""
	if len(preview) > maxBytePreview {
		preview = preview[:maxBytePreview]
		ellipsis = "..."
	}
	return fmt.Sprintf("<%d bytes: %s%s>", len(b), hex.EncodeToString(preview), ellipsis)
}

func isPrintable(b []byte) bool {
	for _, c := range string(b) {
		if c < 0x20 && c != '\n' && c != '\t' {
			return false
		}
	}
	return true
}

func renderStats(v *bencode.Value, stats bool) string {
	if !stats {
		return ""
	}
	return fmt.Sprintf("  [%d bytes encoded]", bencode.EncodedLen(v))
}
