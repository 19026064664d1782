package vortex

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Giulio2002/vortexhash/internal/capability"
)

// allTierProfiles returns one synthetic profile per tier, each selecting
// that tier.
func allTierProfiles() []Profile {
	out := make([]Profile, 0, capability.NumTiers)
	for t := range capability.NumTiers {
		out = append(out, capability.ForTier(Tier(t)))
	}
	return out
}

func TestDispatcherSelectsChosenTier(t *testing.T) {
	for _, p := range allTierProfiles() {
		d := NewDispatcher(p)
		assert.Equal(t, p.Chosen, d.Tier())
		assert.Equal(t, defaultKernels[p.Chosen].name, d.Kernel())
		assert.Equal(t, p, d.Profile())
	}
}

func TestTierEquivalence(t *testing.T) {
	sizes := []int{1, 7, 55, 56, 63, 64, 65, 128, 1000, 4096, 4 << 20}
	for _, p := range allTierProfiles() {
		d := NewDispatcher(p)
		t.Run(d.Tier().String(), func(t *testing.T) {
			assert.True(t, d.Sum(nil).IsZero())
			assert.True(t, d.Sum([]byte{}).IsZero())

			for _, n := range sizes {
				data := benchData(n)
				require.Equal(t, Sum(data), d.Sum(data), "length %d", n)
			}

			h := d.New()
			empty, err := h.Finalize()
			require.NoError(t, err)
			assert.Equal(t, Sum(nil), empty)
		})
	}
}

func TestDispatcherZeroProfile(t *testing.T) {
	d := NewDispatcher(Profile{})
	assert.Equal(t, TierScalar, d.Tier())
	assert.Equal(t, Sum([]byte("abc")), d.Sum([]byte("abc")))
}

func TestDispatcherTierCeiling(t *testing.T) {
	all := ProfileFromFeatures(Features{
		SSE41: true, AES: true, PCLMULQDQ: true, AVX: true, AVX2: true, SHA: true,
		AVX512F: true, AVX512BW: true, AVX512VL: true, AVX512VNNI: true,
	})
	require.Equal(t, TierWideVectorML, all.Chosen)

	assert.Equal(t, TierWideVectorML, NewDispatcher(all).Tier())
	assert.Equal(t, TierMidVector, NewDispatcher(all, WithTierCeiling(TierMidVector)).Tier())
	assert.Equal(t, TierScalar, NewDispatcher(all, WithTierCeiling(TierScalar)).Tier())

	// MobileSIMD is not available on this profile, so the walk skips it.
	assert.Equal(t, TierHashHW, NewDispatcher(all, WithTierCeiling(TierMobileSIMD)).Tier())
}

func TestDispatcherSkipsUnavailableTiers(t *testing.T) {
	p := capability.ForTier(TierWideVector)
	p.Available[TierWideVector] = false
	assert.Equal(t, TierScalar, NewDispatcher(p).Tier())
}

// flipFirstWord is a deliberately wrong kernel.
func flipFirstWord(state *[4]uint64, p []byte) {
	blocksGeneric(state, p)
	state[0] ^= 1
}

func panicking(*[4]uint64, []byte) { panic("illegal instruction") }

func TestUnverifiedTierFallsBack(t *testing.T) {
	kernels := defaultKernels
	kernels[capability.MidVector] = kernel{"broken", flipFirstWord}
	kernels[capability.WideVector] = kernel{"crashing", panicking}
	set := newTierSet(kernels)

	require.False(t, set.verified[capability.MidVector])
	require.False(t, set.verified[capability.WideVector])
	assert.ErrorContains(t, set.failures[capability.MidVector], "mismatch")
	assert.ErrorContains(t, set.failures[capability.WideVector], "panicked")
	assert.True(t, set.verified[capability.CryptoHW])

	var logs bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	all := ProfileFromFeatures(Features{
		SSE41: true, AES: true, PCLMULQDQ: true, AVX: true, AVX2: true,
	})
	d := NewDispatcher(all, withTierSet(set), WithLogger(logger))
	assert.Equal(t, TierCryptoHW, d.Tier())
	assert.Contains(t, logs.String(), "falling back")
	assert.Contains(t, logs.String(), "tier=mid-vector")

	d = NewDispatcher(capability.ForTier(TierWideVector), withTierSet(set))
	assert.Equal(t, TierScalar, d.Tier())
	assert.Equal(t, Sum([]byte("abc")), d.Sum([]byte("abc")))
}

func TestMissingKernelIsUnverified(t *testing.T) {
	kernels := defaultKernels
	kernels[capability.HashHW] = kernel{name: "missing"}
	set := newTierSet(kernels)
	assert.False(t, set.verified[capability.HashHW])
	assert.Error(t, set.failures[capability.HashHW])
}

func TestDefaultTiersAllVerified(t *testing.T) {
	set := defaultTiers()
	for i := range set.impls {
		assert.True(t, set.verified[i], "tier %s: %v", capability.Tier(i), set.failures[i])
	}
}

func TestDispatcherHMAC(t *testing.T) {
	key := []byte("key")
	want := HMAC(key, []byte(fox))
	for _, p := range allTierProfiles() {
		d := NewDispatcher(p)
		assert.Equal(t, want, d.HMAC(key, []byte(fox)), "tier %s", d.Tier())

		m := d.NewMAC(key)
		_, err := m.Write([]byte(fox))
		require.NoError(t, err)
		got, err := m.Finalize()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSumFast(t *testing.T) {
	data := []byte("hello")
	assert.Equal(t, Sum(data), SumFast(data))
	assert.True(t, SumFast(nil).IsZero())
	assert.Same(t, Default(), Default())
	assert.Equal(t, capability.Cached(), Default().Profile())
}

func TestWithNilLogger(t *testing.T) {
	d := NewDispatcher(ProfileFromFeatures(Features{}), WithLogger(nil))
	assert.Equal(t, TierScalar, d.Tier())
}
