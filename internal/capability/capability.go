// Package capability detects which acceleration tiers the running CPU can
// use for Vortex-256.
//
// Detection produces an immutable Profile. Nothing here is global mutable
// state: Detect probes afresh on every call, Cached memoizes one Detect per
// process, and FromFeatures builds a Profile from synthetic flags so tests
// can exercise every tier on any machine.
//
// Set VORTEX_TIER to a tier name (or t0..t7) to force a lower available
// tier. Build with -tags purego to disable probing entirely.
package capability

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// EnvOverride names the environment variable that forces a tier.
const EnvOverride = "VORTEX_TIER"

// Tier is one interchangeable backend, ordered from least to most
// specialized.
type Tier uint8

const (
	// Scalar is the portable reference implementation (T0).
	Scalar Tier = iota
	// NarrowVector needs SSE4.1 (T1).
	NarrowVector
	// CryptoHW needs AES-NI and PCLMULQDQ (T2).
	CryptoHW
	// MidVector needs AVX and AVX2 (T3).
	MidVector
	// HashHW needs x86 SHA extensions or ARMv8 SHA2 (T4).
	HashHW
	// MobileSIMD needs ARM64 ASIMD (T5).
	MobileSIMD
	// WideVector needs AVX-512 F, BW and VL (T6).
	WideVector
	// WideVectorML needs WideVector plus AVX-512 VNNI (T7).
	WideVectorML
)

// NumTiers is the number of defined tiers.
const NumTiers = int(WideVectorML) + 1

var tierNames = [NumTiers]string{
	"scalar",
	"narrow-vector",
	"crypto-hw",
	"mid-vector",
	"hash-hw",
	"mobile-simd",
	"wide-vector",
	"wide-vector-ml",
}

// throughput is the advisory MB/s estimate per tier.
var throughput = [NumTiers]float64{1500, 2200, 2800, 3500, 3200, 4000, 5000, 5500}

func (t Tier) String() string {
	if int(t) < NumTiers {
		return tierNames[t]
	}
	return fmt.Sprintf("tier(%d)", uint8(t))
}

// Throughput returns the advisory throughput estimate of t in MB/s.
func (t Tier) Throughput() float64 {
	if int(t) < NumTiers {
		return throughput[t]
	}
	return 0
}

// ParseTier parses a tier name as printed by String, or t0..t7.
func ParseTier(s string) (Tier, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tierNames {
		if s == name || s == fmt.Sprintf("t%d", i) {
			return Tier(i), true
		}
	}
	return Scalar, false
}

// Features holds the CPU feature flags relevant to tier selection.
type Features struct {
	// x86-64
	SSE41      bool
	AES        bool
	PCLMULQDQ  bool
	AVX        bool
	AVX2       bool
	SHA        bool
	AVX512F    bool
	AVX512BW   bool
	AVX512VL   bool
	AVX512VNNI bool

	// arm64
	ASIMD   bool
	ARMSHA2 bool
}

// Supports reports whether every flag t requires is set.
func (f Features) Supports(t Tier) bool {
	switch t {
	case Scalar:
		return true
	case NarrowVector:
		return f.SSE41
	case CryptoHW:
		return f.AES && f.PCLMULQDQ
	case MidVector:
		return f.AVX && f.AVX2
	case HashHW:
		return f.SHA || f.ARMSHA2
	case MobileSIMD:
		return f.ASIMD
	case WideVector:
		return f.AVX512F && f.AVX512BW && f.AVX512VL
	case WideVectorML:
		return f.AVX512F && f.AVX512BW && f.AVX512VL && f.AVX512VNNI
	default:
		return false
	}
}

// FeaturesFor returns the smallest flag set under which t is supported.
func FeaturesFor(t Tier) Features {
	var f Features
	switch t {
	case NarrowVector:
		f.SSE41 = true
	case CryptoHW:
		f.AES, f.PCLMULQDQ = true, true
	case MidVector:
		f.AVX, f.AVX2 = true, true
	case HashHW:
		f.SHA = true
	case MobileSIMD:
		f.ASIMD = true
	case WideVector:
		f.AVX512F, f.AVX512BW, f.AVX512VL = true, true, true
	case WideVectorML:
		f.AVX512F, f.AVX512BW, f.AVX512VL, f.AVX512VNNI = true, true, true, true
	}
	return f
}

// Select returns the most specialized tier f supports.
func Select(f Features) Tier {
	for t := WideVectorML; t > Scalar; t-- {
		if f.Supports(t) {
			return t
		}
	}
	return Scalar
}

// Profile is the result of capability detection. It is a value and is
// never mutated after construction.
type Profile struct {
	Features

	// Available marks every tier whose flags are all set.
	Available [NumTiers]bool

	// Chosen is the tier a dispatcher should start from.
	Chosen Tier

	// Throughput is the advisory MB/s estimate for Chosen.
	Throughput float64

	// Overridden is true when EnvOverride picked Chosen.
	Overridden bool

	// Brand is the CPU brand string, if known.
	Brand string

	// Unprobed lists features whose probe failed; they count as absent.
	Unprobed []string
}

// FromFeatures builds a Profile from f without touching the CPU.
func FromFeatures(f Features) Profile {
	p := Profile{Features: f}
	for t := range NumTiers {
		p.Available[t] = f.Supports(Tier(t))
	}
	p.Chosen = Select(f)
	p.Throughput = p.Chosen.Throughput()
	return p
}

// ForTier is FromFeatures(FeaturesFor(t)).
func ForTier(t Tier) Profile { return FromFeatures(FeaturesFor(t)) }

// Tiers returns the available tiers from most to least specialized.
func (p Profile) Tiers() []Tier {
	out := make([]Tier, 0, NumTiers)
	for t := NumTiers - 1; t >= 0; t-- {
		if p.Available[t] {
			out = append(out, Tier(t))
		}
	}
	return out
}

// WithOverride returns p with Chosen forced to t when t is available.
// The second result reports whether the override was applied.
func (p Profile) WithOverride(t Tier) (Profile, bool) {
	if int(t) >= NumTiers || !p.Available[t] {
		return p, false
	}
	p.Chosen = t
	p.Throughput = t.Throughput()
	p.Overridden = true
	return p, true
}

func (p Profile) String() string {
	return fmt.Sprintf("chosen=%s throughput=%.0fMB/s tiers=%v overridden=%t", p.Chosen, p.Throughput, p.Tiers(), p.Overridden)
}

// Detect probes the CPU and returns its Profile. It never fails: a probe
// that panics counts as an absent feature, and with no accelerated feature
// the profile selects Scalar.
func Detect() Profile {
	f, brand, unprobed := probe()
	p := FromFeatures(f)
	p.Brand = brand
	p.Unprobed = unprobed

	if name := os.Getenv(EnvOverride); name != "" {
		if t, ok := ParseTier(name); ok {
			p, _ = p.WithOverride(t)
		}
	}
	return p
}

var cached = sync.OnceValue(Detect)

// Cached returns the Profile detected on first use. Concurrent first calls
// are safe.
func Cached() Profile { return cached() }

// prober accumulates feature probes, recovering from any that panic.
type prober struct {
	failed []string
}

func (pr *prober) check(name string, fn func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			pr.failed = append(pr.failed, name)
			ok = false
		}
	}()
	return fn()
}
