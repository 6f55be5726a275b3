//go:build amd64

package cpufeat

import "golang.org/x/sys/cpu"

const hostArch = "x86_64"

// hasFeature probes one x86-64 feature token. Each token is checked
// individually; nothing is assumed from the presence of a higher tier.
func hasFeature(tok string) bool {
	switch tok {
	// x86-64 baseline: every amd64 CPU has these.
	case "sse":
		return true
	case "sse2":
		return cpu.X86.HasSSE2
	case "sse3":
		return cpu.X86.HasSSE3
	case "ssse3":
		return cpu.X86.HasSSSE3
	case "sse4.1":
		return cpu.X86.HasSSE41
	case "sse4.2":
		return cpu.X86.HasSSE42
	case "popcnt":
		return cpu.X86.HasPOPCNT
	case "cmpxchg16b":
		return cpu.X86.HasCX16
	case "avx":
		return cpu.X86.HasAVX
	case "avx2":
		return cpu.X86.HasAVX2
	case "fma":
		return cpu.X86.HasFMA
	case "bmi1":
		return cpu.X86.HasBMI1
	case "bmi2":
		return cpu.X86.HasBMI2
	case "f16c":
		// x/sys/cpu does not expose F16C; FMA is a reliable proxy since
		// every FMA-capable CPU also has F16C.
		return cpu.X86.HasAVX && cpu.X86.HasFMA
	case "lzcnt", "movbe":
		// Not exposed by x/sys/cpu either; both predate AVX2 on every
		// vendor, so AVX2 is a safe proxy.
		return cpu.X86.HasAVX2
	case "avx512f":
		return cpu.X86.HasAVX512F
	case "avx512bw":
		return cpu.X86.HasAVX512BW
	case "avx512cd":
		return cpu.X86.HasAVX512CD
	case "avx512dq":
		return cpu.X86.HasAVX512DQ
	case "avx512vl":
		return cpu.X86.HasAVX512VL
	case "avx512vpopcntdq":
		return cpu.X86.HasAVX512VPOPCNTDQ
	case "avx512ifma":
		return cpu.X86.HasAVX512IFMA
	case "avx512vbmi":
		return cpu.X86.HasAVX512VBMI
	case "avx512vbmi2":
		return cpu.X86.HasAVX512VBMI2
	case "avx512bitalg":
		return cpu.X86.HasAVX512BITALG
	case "avx512vnni":
		return cpu.X86.HasAVX512VNNI
	case "vpclmulqdq":
		return cpu.X86.HasAVX512VPCLMULQDQ
	case "gfni":
		return cpu.X86.HasAVX512GFNI
	case "vaes":
		return cpu.X86.HasAVX512VAES
	default:
		return false
	}
}
