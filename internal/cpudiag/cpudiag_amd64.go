//go:build amd64

package cpudiag

import "golang.org/x/sys/cpu"

func detectImpl() Features {
	return Features{
		Arch:     "amd64",
		SSE2:     cpu.X86.HasSSE2,
		SSE41:    cpu.X86.HasSSE41,
		AVX2:     cpu.X86.HasAVX2,
		Detected: true,
	}
}
