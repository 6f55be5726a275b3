//go:build darwin && arm64

package cpufeat

import "syscall"

const hostArch = "aarch64"

// macOS does not populate HWCAP, so x/sys/cpu reports nothing useful here.
// Apple exposes the same information through hw.optional sysctls instead.
var featSysctl = map[string]string{
	"neon":    "hw.optional.AdvSIMD",
	"crc":     "hw.optional.armv8_crc32",
	"rdm":     "hw.optional.arm.FEAT_RDM",
	"dotprod": "hw.optional.arm.FEAT_DotProd",
	"fp16":    "hw.optional.arm.FEAT_FP16",
	"aes":     "hw.optional.arm.FEAT_AES",
	"sha2":    "hw.optional.arm.FEAT_SHA256",
	"fhm":     "hw.optional.arm.FEAT_FHM",
	"fcma":    "hw.optional.arm.FEAT_FCMA",
	"sha3":    "hw.optional.arm.FEAT_SHA3",
	"i8mm":    "hw.optional.arm.FEAT_I8MM",
	"bf16":    "hw.optional.arm.FEAT_BF16",
}

// feats caches the sysctl probes, filled once at startup.
var feats = probeFeatures()

func probeFeatures() map[string]bool {
	out := make(map[string]bool, len(featSysctl))
	for tok, name := range featSysctl {
		out[tok] = sysctlEnabled(name)
	}
	return out
}

func sysctlEnabled(name string) bool {
	val, err := syscall.Sysctl(name)
	if err != nil {
		return false
	}
	return len(val) > 0 && val[0] == 1
}

func hasFeature(tok string) bool {
	return feats[tok]
}
