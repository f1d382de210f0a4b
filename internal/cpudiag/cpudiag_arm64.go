//go:build arm64

package cpudiag

import "golang.org/x/sys/cpu"

func detectImpl() Features {
	return Features{
		Arch:     "arm64",
		NEON:     cpu.ARM64.HasASIMD,
		Detected: true,
	}
}
