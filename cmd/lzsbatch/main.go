// Command lzsbatch compresses or decompresses many independent files
// concurrently. Each file is processed by a single-threaded compress or
// decompress call; lzsbatch's only contribution is keeping N of those
// calls in flight at once across an input file list — it never
// parallelizes within one call.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hbarrett/lzs"
	"github.com/hbarrett/lzs/internal/batch"
	"github.com/hbarrett/lzs/internal/cpudiag"
)

const compressedExtension = ".lzs"

var (
	decompressMode bool
	outputDir      string
	workers        int
	showCPU        bool
)

func init() {
	flag.BoolVar(&decompressMode, "d", false, "decompress mode")
	flag.StringVar(&outputDir, "o", "", "output directory (default: alongside each input file)")
	flag.IntVar(&workers, "j", runtime.GOMAXPROCS(0), "number of files to process concurrently")
	flag.BoolVar(&showCPU, "cpu", false, "print detected CPU features and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lzsbatch compresses or decompresses many files concurrently\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file...\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if showCPU {
		printCPUFeatures()
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	results, err := runBatch(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "lzsbatch: %v\n", err)
		os.Exit(1)
	}

	summary := batch.Summarize(results)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "lzsbatch: %s: %v\n", r.Path, r.Err)
		}
	}
	fmt.Printf("processed %d file(s): %d ok, %d failed\n", len(results), summary.Succeeded, summary.Failed)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func printCPUFeatures() {
	f := cpudiag.Detect()
	fmt.Printf("arch: %s\n", f.Arch)
	if !f.Detected {
		fmt.Println("no feature flags probed on this architecture")
		return
	}
	fmt.Printf("sse2=%v sse41=%v avx2=%v neon=%v\n", f.SSE2, f.SSE41, f.AVX2, f.NEON)
	fmt.Println("(informational only: lzsbatch's engine is scalar and does not branch on these)")
}

func runBatch(paths []string) ([]batch.Result, error) {
	jobs := make([]batch.Job, len(paths))
	for i, path := range paths {
		input, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		jobs[i] = batch.Job{
			Index: i,
			Path:  path,
			Input: input,
			Run:   fileOp(path),
		}
	}

	d := batch.NewDispatcher(workers)
	results, err := d.Run(jobs)
	if err != nil {
		return nil, err
	}

	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if err := writeOutput(results[i].Path, results[i].Output); err != nil {
			results[i].Err = err
		}
	}
	return results, nil
}

func fileOp(path string) func([]byte) ([]byte, error) {
	if decompressMode {
		return func(in []byte) ([]byte, error) { return lzs.DecompressBytes(in, nil) }
	}
	return func(in []byte) ([]byte, error) { return lzs.CompressToBytes(in, nil) }
}

func writeOutput(inputPath string, data []byte) error {
	outPath := outputPath(inputPath)
	return os.WriteFile(outPath, data, 0o644)
}

func outputPath(inputPath string) string {
	name := filepath.Base(inputPath)
	if decompressMode {
		name = strings.TrimSuffix(name, compressedExtension)
	} else {
		name += compressedExtension
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, name)
}
