//go:build amd64 && !purego

package capability

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// x/sys/cpu has no flag for the SHA extensions, so that one comes from
// cpuid, along with the brand string.
func probe() (Features, string, []string) {
	var (
		pr prober
		f  Features
	)
	f.SSE41 = pr.check("sse4.1", func() bool { return cpu.X86.HasSSE41 })
	f.AES = pr.check("aes", func() bool { return cpu.X86.HasAES })
	f.PCLMULQDQ = pr.check("pclmulqdq", func() bool { return cpu.X86.HasPCLMULQDQ })
	f.AVX = pr.check("avx", func() bool { return cpu.X86.HasAVX })
	f.AVX2 = pr.check("avx2", func() bool { return cpu.X86.HasAVX2 })
	f.SHA = pr.check("sha", func() bool { return cpuid.CPU.Supports(cpuid.SHA) })
	f.AVX512F = pr.check("avx512f", func() bool { return cpu.X86.HasAVX512F })
	f.AVX512BW = pr.check("avx512bw", func() bool { return cpu.X86.HasAVX512BW })
	f.AVX512VL = pr.check("avx512vl", func() bool { return cpu.X86.HasAVX512VL })
	f.AVX512VNNI = pr.check("avx512vnni", func() bool { return cpu.X86.HasAVX512VNNI })
	return f, cpuid.CPU.BrandName, pr.failed
}
