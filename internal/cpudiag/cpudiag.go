// Package cpudiag reports the host's relevant CPU feature flags. It never
// feeds a codec or engine decision — the engine is deliberately scalar and
// portable — this is startup diagnostic output only, for operators sizing
// lzsbatch's worker count to the machine they're on.
package cpudiag

// Features is a snapshot of the CPU capabilities probed at startup.
type Features struct {
	Arch     string
	SSE2     bool
	SSE41    bool
	AVX2     bool
	NEON     bool
	Detected bool
}

// Detect probes the current CPU's feature flags. Unsupported architectures
// return a Features with Detected false.
func Detect() Features {
	return detectImpl()
}
