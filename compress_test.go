package vortex

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelsAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	kernels := []kernel{kernelPaired, kernelUnrolled}

	for iter := 0; iter < 200; iter++ {
		var start [4]uint64
		for i := range start {
			start[i] = rng.Uint64()
		}
		p := make([]byte, BlockSize*(1+rng.IntN(4)))
		for i := range p {
			p[i] = byte(rng.Uint32())
		}

		want := start
		blocksGeneric(&want, p)
		for _, k := range kernels {
			got := start
			k.blocks(&got, p)
			require.Equal(t, want, got, "kernel %s, iteration %d", k.name, iter)
		}
	}
}

func TestKernelsIgnoreEmptyInput(t *testing.T) {
	for _, k := range []kernel{kernelGeneric, kernelPaired, kernelUnrolled} {
		st := iv
		k.blocks(&st, nil)
		assert.Equal(t, iv, st, k.name)
	}
}

func TestKernelBlocksAreSequential(t *testing.T) {
	p := benchData(3 * BlockSize)
	for _, k := range []kernel{kernelGeneric, kernelPaired, kernelUnrolled} {
		whole := iv
		k.blocks(&whole, p)

		stepped := iv
		for off := 0; off < len(p); off += BlockSize {
			k.blocks(&stepped, p[off:off+BlockSize])
		}
		assert.Equal(t, whole, stepped, k.name)
	}
}
