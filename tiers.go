package vortex

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/Giulio2002/vortexhash/internal/capability"
)

// tierImpl is one selectable backend: a block kernel plus its own one-shot
// absorb path.
type tierImpl struct {
	tier   capability.Tier
	kernel string
	blocks blocksFunc
}

// sum absorbs the full blocks of data in place, without staging them
// through a buffer, then pads the tail.
func (ti *tierImpl) sum(data []byte) Digest {
	words := iv
	full := len(data) &^ (BlockSize - 1)
	if full > 0 {
		ti.blocks(&words, data[:full])
	}
	return finish(ti.blocks, words, data[full:], uint64(len(data)))
}

type kernel struct {
	name   string
	blocks blocksFunc
}

var (
	kernelGeneric  = kernel{"generic", blocksGeneric}
	kernelPaired   = kernel{"paired", blocksPaired}
	kernelUnrolled = kernel{"unrolled", blocksUnrolled}
)

// defaultKernels maps each tier to its kernel.
// TODO: replace the MidVector and WideVector kernels with AVX2/AVX-512
// assembly interleaving independent lanes of the round function.
var defaultKernels = [capability.NumTiers]kernel{
	capability.Scalar:       kernelGeneric,
	capability.NarrowVector: kernelPaired,
	capability.CryptoHW:     kernelPaired,
	capability.MidVector:    kernelUnrolled,
	capability.HashHW:       kernelUnrolled,
	capability.MobileSIMD:   kernelUnrolled,
	capability.WideVector:   kernelUnrolled,
	capability.WideVectorML: kernelUnrolled,
}

// tierSet is every tier implementation plus whether it passed the
// equivalence self-test against the scalar reference.
type tierSet struct {
	impls    [capability.NumTiers]tierImpl
	verified [capability.NumTiers]bool
	failures [capability.NumTiers]error
}

var defaultTiers = sync.OnceValue(func() *tierSet {
	return newTierSet(defaultKernels)
})

func newTierSet(kernels [capability.NumTiers]kernel) *tierSet {
	s := &tierSet{}
	for t, k := range kernels {
		s.impls[t] = tierImpl{tier: capability.Tier(t), kernel: k.name, blocks: k.blocks}
		if capability.Tier(t) == capability.Scalar {
			s.verified[t] = true
			continue
		}
		s.failures[t] = verifyTier(&s.impls[t])
		s.verified[t] = s.failures[t] == nil
	}
	return s
}

// selfTestLengths straddle every padding boundary: empty, one byte, the
// last length that pads into one block, exact blocks and multi-block.
var selfTestLengths = []int{0, 1, 55, 56, 63, 64, 65, 119, 120, 127, 128, 129, 1000, 4099}

// verifyTier checks both absorb paths of ti against the scalar streaming
// engine. A kernel that panics fails verification.
func verifyTier(ti *tierImpl) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("kernel %s panicked: %v", ti.kernel, r)
		}
	}()
	if ti.blocks == nil {
		return fmt.Errorf("no kernel for tier %s", ti.tier)
	}

	msg := selfTestMessage(selfTestLengths[len(selfTestLengths)-1])
	for _, n := range selfTestLengths {
		want := Sum(msg[:n])

		if got := ti.sum(msg[:n]); !bytes.Equal(got[:], want[:]) {
			return fmt.Errorf("kernel %s one-shot mismatch at length %d", ti.kernel, n)
		}

		h := newHasher(ti.blocks)
		h.Update(msg[:n/3])
		h.Update(msg[n/3 : n])
		got, _ := h.Finalize()
		h.Destroy()
		if !bytes.Equal(got[:], want[:]) {
			return fmt.Errorf("kernel %s streaming mismatch at length %d", ti.kernel, n)
		}
	}
	return nil
}

func selfTestMessage(n int) []byte {
	msg := make([]byte, n)
	for i := range msg {
		msg[i] = byte(i*131 + 7)
	}
	return msg
}
