package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// readInput loads the whole input into memory: a file argument, or
// stdin when path is empty or "-". Files ending in .zst or .zstd are
// decompressed after reading. The codec itself never touches the
// filesystem; it always receives a fully materialized buffer.
func readInput(path string) ([]byte, error) {
	var data []byte
	var err error

	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".zst") || strings.HasSuffix(path, ".zstd") {
		return decompress(data)
	}
	return data, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("init zstd: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

// writeOutput writes binary output to stdout, zstd-compressing it
// when requested.
func writeOutput(data []byte, compress bool) {
	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			fatal("init zstd: %v", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fatal("write output: %v", err)
	}
}
