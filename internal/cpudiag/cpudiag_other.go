//go:build !amd64 && !arm64

package cpudiag

func detectImpl() Features {
	return Features{Arch: "unknown"}
}
