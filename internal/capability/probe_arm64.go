//go:build arm64 && !purego

package capability

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

func probe() (Features, string, []string) {
	var (
		pr prober
		f  Features
	)
	f.ASIMD = pr.check("asimd", func() bool { return cpu.ARM64.HasASIMD })
	f.ARMSHA2 = pr.check("sha2", func() bool { return cpu.ARM64.HasSHA2 })
	return f, cpuid.CPU.BrandName, pr.failed
}
