// bench - bencode benchmark runner
//
// Compares canonical bencode vs JSON-minified across a corpus:
//   - Bytes on the wire
//   - Bytes after zstd compression
//
// Output: CSV and markdown summary
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/bencodeio/bencode/bencode"
)

type CaseResult struct {
	Name         string
	JSONBytes    int
	BencodeBytes int
	BytesSaved   int
	BytesPct     float64
	ZstdBytes    int
	ZstdPct      float64
}

type Manifest struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Cases       []struct {
		Name string `json:"name"`
		File string `json:"file"`
	} `json:"cases"`
}

func main() {
	testdataDir := findTestdata()
	if testdataDir == "" {
		fmt.Fprintln(os.Stderr, "Cannot find bencode/testdata/bench directory")
		os.Exit(1)
	}

	manifestData, err := os.ReadFile(filepath.Join(testdataDir, "manifest.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read manifest: %v\n", err)
		os.Exit(1)
	}

	var manifest Manifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse manifest: %v\n", err)
		os.Exit(1)
	}

	zenc, err := zstd.NewWriter(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init zstd: %v\n", err)
		os.Exit(1)
	}
	defer zenc.Close()

	fmt.Fprintf(os.Stderr, "Bencode Benchmark Runner\n")
	fmt.Fprintf(os.Stderr, "========================\n")
	fmt.Fprintf(os.Stderr, "Corpus: %s (%d cases)\n\n", manifest.Version, len(manifest.Cases))

	var results []CaseResult
	var totalJSON, totalBencode, totalZstd int

	for _, c := range manifest.Cases {
		jsonData, err := os.ReadFile(filepath.Join(testdataDir, c.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", c.Name, err)
			continue
		}

		v, err := bencode.FromJSON(jsonData)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: parse error: %v\n", c.Name, err)
			continue
		}
		encoded := bencode.Encode(v)

		// Minify JSON for fair comparison.
		var minified interface{}
		if err := json.Unmarshal(jsonData, &minified); err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: JSON unmarshal error: %v\n", c.Name, err)
			continue
		}
		jsonMin, _ := json.Marshal(minified)

		compressed := zenc.EncodeAll(encoded, nil)

		jsonBytes := len(jsonMin)
		bencodeBytes := len(encoded)
		bytesSaved := jsonBytes - bencodeBytes
		bytesPct := 0.0
		if jsonBytes > 0 {
			bytesPct = float64(bytesSaved) / float64(jsonBytes) * 100.0
		}
		zstdPct := 0.0
		if jsonBytes > 0 {
			zstdPct = float64(jsonBytes-len(compressed)) / float64(jsonBytes) * 100.0
		}

		results = append(results, CaseResult{
			Name:         c.Name,
			JSONBytes:    jsonBytes,
			BencodeBytes: bencodeBytes,
			BytesSaved:   bytesSaved,
			BytesPct:     bytesPct,
			ZstdBytes:    len(compressed),
			ZstdPct:      zstdPct,
		})

		totalJSON += jsonBytes
		totalBencode += bencodeBytes
		totalZstd += len(compressed)
	}

	csvPath := "bench_results.csv"
	if csvFile, err := os.Create(csvPath); err == nil {
		writeCSV(csvFile, results)
		csvFile.Close()
		fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
	}

	mdPath := "bench_results.md"
	if mdFile, err := os.Create(mdPath); err == nil {
		writeMarkdown(mdFile, results, totalJSON, totalBencode, totalZstd, manifest.Version)
		mdFile.Close()
		fmt.Fprintf(os.Stderr, "Markdown written to: %s\n", mdPath)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Cases:          %d\n", len(results))
	fmt.Printf("JSON total:     %d bytes\n", totalJSON)
	fmt.Printf("Bencode total:  %d bytes\n", totalBencode)
	fmt.Printf("Zstd total:     %d bytes\n", totalZstd)
	if totalJSON > 0 {
		fmt.Printf("Bytes saved:    %d (%.1f%%)\n", totalJSON-totalBencode,
			float64(totalJSON-totalBencode)/float64(totalJSON)*100)
	}
}

// findTestdata locates the bench corpus relative to common working
// directories.
func findTestdata() string {
	candidates := []string{
		filepath.Join("bencode", "testdata", "bench"),
		filepath.Join("..", "..", "bencode", "testdata", "bench"),
		filepath.Join("testdata", "bench"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,json_bytes,bencode_bytes,bytes_saved,bytes_pct,zstd_bytes,zstd_pct")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%d,%d,%d,%.1f,%d,%.1f\n",
			r.Name, r.JSONBytes, r.BencodeBytes, r.BytesSaved, r.BytesPct, r.ZstdBytes, r.ZstdPct)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, totalJSON, totalBencode, totalZstd int, corpus string) {
	fmt.Fprintf(w, "# Bencode vs JSON size comparison\n\n")
	fmt.Fprintf(w, "Corpus: %s\n\n", corpus)
	fmt.Fprintln(w, "| Case | JSON (min) | Bencode | Saved | Bencode+zstd |")
	fmt.Fprintln(w, "|------|-----------:|--------:|------:|-------------:|")
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %d | %.1f%% | %d |\n",
			r.Name, r.JSONBytes, r.BencodeBytes, r.BytesPct, r.ZstdBytes)
	}
	fmt.Fprintf(w, "| **Total** | **%d** | **%d** | | **%d** |\n", totalJSON, totalBencode, totalZstd)
}
