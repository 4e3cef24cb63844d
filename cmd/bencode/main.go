// bencode - bencode codec CLI tool
//
// Usage:
//
//	bencode dump [file]       Decode and pretty-print the value tree
//	bencode to-json [file]    Convert bencode to JSON
//	bencode from-json [file]  Convert JSON to canonical bencode
//	bencode to-cbor [file]    Convert bencode to deterministic CBOR
//	bencode canon [file]      Decode and re-encode canonically
//	bencode version           Print version info
//
// Input files ending in .zst or .zstd are transparently decompressed.
// If no file is given, reads from stdin.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bencodeio/bencode/bencode"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "version", "-v", "--version":
		fmt.Printf("bencode %s\n", version)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	var extended bool
	var stats bool
	var compress bool

	flagSet := pflag.NewFlagSet("bencode "+cmd, pflag.ContinueOnError)
	flagSet.BoolVar(&extended, "extended", false, "use $bytes markers for lossless JSON round-trip of binary strings")
	flagSet.BoolVar(&stats, "stats", false, "show offsets and encoded lengths in dump output")
	flagSet.BoolVar(&compress, "compress", false, "zstd-compress binary output")
	if err := flagSet.Parse(os.Args[2:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fatal("%v", err)
	}

	fileArg := ""
	if args := flagSet.Args(); len(args) > 0 {
		fileArg = args[0]
		if len(args) > 1 {
			fatal("unexpected argument: %s", args[1])
		}
	}

	input, err := readInput(fileArg)
	if err != nil {
		fatal("read input: %v", err)
	}

	opts := bencode.BridgeOpts{Extended: extended}

	switch cmd {
	case "dump":
		cmdDump(input, stats)
	case "to-json":
		cmdToJSON(input, opts)
	case "from-json":
		cmdFromJSON(input, opts, compress)
	case "to-cbor":
		cmdToCBOR(input, compress)
	case "canon":
		cmdCanon(input, compress)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `bencode - bencode codec CLI tool

Usage:
  bencode dump [--stats] [file]        Decode and pretty-print the value tree
  bencode to-json [--extended] [file]  Convert bencode to JSON
  bencode from-json [options] [file]   Convert JSON to canonical bencode
  bencode to-cbor [options] [file]     Convert bencode to deterministic CBOR
  bencode canon [options] [file]       Decode and re-encode canonically
  bencode version                      Print version info

Options:
  --extended     Use {"$bytes": "<base64>"} markers so non-UTF-8 byte
                 strings survive a JSON round-trip
  --stats        Show byte offsets and encoded lengths in dump output
  --compress     zstd-compress binary output (from-json, to-cbor, canon)

Input files ending in .zst or .zstd are transparently decompressed.
If no file is given, reads from stdin.

Examples:
  bencode dump artifact.torrent
  bencode to-json artifact.torrent | jq .announce
  echo '{"b":1,"a":2}' | bencode from-json
  # Output: d1:ai2e1:bi1ee

  # Normalize a dictionary emitted by a permissive producer
  bencode canon sloppy.bencode > canonical.bencode
`)
}

// cmdDump: decode and pretty-print the tree.
func cmdDump(input []byte, stats bool) {
	v, n, err := bencode.DecodeAt(input, 0)
	if err != nil {
		fatal("%v", err)
	}
	dumpValue(os.Stdout, v, 0, stats)
	if n < len(input) {
		fmt.Fprintf(os.Stderr, "warning: %d trailing bytes after value\n", len(input)-n)
	}
}

// cmdToJSON: bencode -> JSON (pretty-printed).
func cmdToJSON(input []byte, opts bencode.BridgeOpts) {
	v, err := bencode.Decode(input)
	if err != nil {
		fatal("%v", err)
	}
	jsonData, err := bencode.ToJSONWithOpts(v, opts)
	if err != nil {
		fatal("convert to JSON: %v", err)
	}

	var pretty interface{}
	json.Unmarshal(jsonData, &pretty)
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

// cmdFromJSON: JSON -> canonical bencode.
func cmdFromJSON(input []byte, opts bencode.BridgeOpts, compress bool) {
	v, err := bencode.FromJSONWithOpts(input, opts)
	if err != nil {
		fatal("parse JSON: %v", err)
	}
	writeOutput(bencode.Encode(v), compress)
}

// cmdToCBOR: bencode -> deterministic CBOR.
func cmdToCBOR(input []byte, compress bool) {
	v, err := bencode.Decode(input)
	if err != nil {
		fatal("%v", err)
	}
	data, err := bencode.ToCBOR(v)
	if err != nil {
		fatal("convert to CBOR: %v", err)
	}
	writeOutput(data, compress)
}

// cmdCanon: decode then re-encode, normalizing dictionary order from
// permissive producers.
func cmdCanon(input []byte, compress bool) {
	v, n, err := bencode.DecodeAt(input, 0)
	if err != nil {
		fatal("%v", err)
	}
	if n < len(input) {
		fmt.Fprintf(os.Stderr, "warning: dropping %d trailing bytes\n", len(input)-n)
	}
	writeOutput(bencode.Encode(v), compress)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "bencode: "+format+"\n", args...)
	os.Exit(1)
}
