package vortex

import (
	"context"
	"io"
	"sync"

	"github.com/Giulio2002/vortexhash/internal/capability"
)

// Tier, Profile and Features re-export the capability types so callers can
// build synthetic profiles.
type (
	Tier     = capability.Tier
	Profile  = capability.Profile
	Features = capability.Features
)

const (
	TierScalar       = capability.Scalar
	TierNarrowVector = capability.NarrowVector
	TierCryptoHW     = capability.CryptoHW
	TierMidVector    = capability.MidVector
	TierHashHW       = capability.HashHW
	TierMobileSIMD   = capability.MobileSIMD
	TierWideVector   = capability.WideVector
	TierWideVectorML = capability.WideVectorML
)

// DetectProfile probes the CPU. See capability.Detect.
func DetectProfile() Profile { return capability.Detect() }

// ProfileFromFeatures builds a profile from explicit flags without probing.
func ProfileFromFeatures(f Features) Profile { return capability.FromFeatures(f) }

type dispatcherOptions struct {
	logger  *Logger
	ceiling Tier
	tiers   *tierSet
}

// DispatcherOption configures NewDispatcher.
type DispatcherOption func(*dispatcherOptions)

// WithLogger sets the logger used to report tier selection and fallbacks.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) DispatcherOption {
	return func(o *dispatcherOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithTierCeiling caps the tier the dispatcher may select.
func WithTierCeiling(t Tier) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.ceiling = t
	}
}

// Dispatcher routes hashing to the most specialized tier that the profile
// allows and that passed its equivalence self-test. A Dispatcher is
// immutable and safe for concurrent use; the Hashers it returns are not.
type Dispatcher struct {
	profile Profile
	impl    *tierImpl
	logger  *Logger
}

// NewDispatcher resolves a tier for profile. Starting at profile.Chosen
// (capped by WithTierCeiling) it walks down until it finds a tier that is
// available and verified. Scalar is always both, so resolution never fails.
func NewDispatcher(profile Profile, opts ...DispatcherOption) *Dispatcher {
	o := dispatcherOptions{
		logger:  NoopLogger(),
		ceiling: TierWideVectorML,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tiers == nil {
		o.tiers = defaultTiers()
	}

	ctx := context.Background()
	t := resolveTier(ctx, profile, min(profile.Chosen, o.ceiling), o.tiers, o.logger)
	d := &Dispatcher{
		profile: profile,
		impl:    &o.tiers.impls[t],
		logger:  o.logger.WithTier(t),
	}
	o.logger.LogTierSelected(ctx, profile, t, d.impl.kernel)
	return d
}

func resolveTier(ctx context.Context, p Profile, start Tier, set *tierSet, log *Logger) Tier {
	if int(start) >= capability.NumTiers {
		start = TierWideVectorML
	}
	for t := start; t > TierScalar; t-- {
		switch {
		case !p.Available[t]:
			continue
		case !set.verified[t]:
			log.LogFallback(ctx, t, set.failures[t].Error())
		default:
			return t
		}
	}
	return TierScalar
}

// Tier returns the tier this dispatcher runs.
func (d *Dispatcher) Tier() Tier { return d.impl.tier }

// Kernel returns the name of the block kernel behind Tier.
func (d *Dispatcher) Kernel() string { return d.impl.kernel }

// Profile returns the profile the dispatcher was built from.
func (d *Dispatcher) Profile() Profile { return d.profile }

// Sum hashes data on the selected tier. Empty input returns the all-zero
// digest without entering any tier.
func (d *Dispatcher) Sum(data []byte) Digest {
	if len(data) == 0 {
		return Digest{}
	}
	return d.impl.sum(data)
}

// New returns a streaming Hasher running the selected tier's kernel.
// Unlike Sum it has no empty-input special case: finalizing it without
// input yields Sum(nil).
func (d *Dispatcher) New() *Hasher { return newHasher(d.impl.blocks) }

// NewMAC returns a streaming HMAC on the selected tier.
func (d *Dispatcher) NewMAC(key []byte) *MAC { return newMAC(key, d.New) }

// HMAC computes HMAC-Vortex-256 on the selected tier. It equals the
// package-level HMAC for every input.
func (d *Dispatcher) HMAC(key, message []byte) Digest { return hmacWith(d.New, key, message) }

// SumReader is the package-level SumReader on the selected tier.
func (d *Dispatcher) SumReader(r io.Reader, bufferSize int) (Digest, error) {
	return sumReader(d.New(), r, bufferSize)
}

var defaultDispatcher = sync.OnceValue(func() *Dispatcher {
	return NewDispatcher(capability.Cached())
})

// Default returns the process-wide dispatcher built from the cached CPU
// profile.
func Default() *Dispatcher { return defaultDispatcher() }

// SumFast hashes data with the default dispatcher.
func SumFast(data []byte) Digest { return Default().Sum(data) }
