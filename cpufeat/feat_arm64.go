//go:build arm64 && !darwin

package cpufeat

import "golang.org/x/sys/cpu"

const hostArch = "aarch64"

// hasFeature probes one aarch64 feature token via x/sys/cpu, which reads
// HWCAP on Linux and the equivalent registers elsewhere.
func hasFeature(tok string) bool {
	switch tok {
	case "neon":
		// ASIMD is part of the ARMv8-A base architecture.
		return cpu.ARM64.HasASIMD
	case "crc":
		return cpu.ARM64.HasCRC32
	case "rdm":
		return cpu.ARM64.HasASIMDRDM
	case "dotprod":
		return cpu.ARM64.HasASIMDDP
	case "fp16":
		return cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
	case "aes":
		return cpu.ARM64.HasAES
	case "sha2":
		return cpu.ARM64.HasSHA2
	case "fhm":
		return cpu.ARM64.HasASIMDFHM
	case "fcma":
		return cpu.ARM64.HasFCMA
	case "sha3":
		return cpu.ARM64.HasSHA3
	case "i8mm":
		return cpu.ARM64.HasI8MM
	case "bf16":
		return cpu.ARM64.HasBF16
	default:
		return false
	}
}
