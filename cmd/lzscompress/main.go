// Command lzscompress compresses a single file to the packed lzs bitstream.
package main

import (
	"fmt"
	"os"

	"github.com/hbarrett/lzs"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <input_path> <output_path>\n", os.Args[0])
		os.Exit(1)
	}
	if err := compressFile(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "lzscompress: %v\n", err)
		os.Exit(1)
	}
}

func compressFile(inputPath, outputPath string) error {
	in, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	encoded, err := lzs.CompressToBytes(in, nil)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
