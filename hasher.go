package vortex

import (
	"encoding/binary"
	"hash"
	"runtime"
)

// Hasher is a streaming Vortex-256 hasher.
//
// The lifecycle is Fresh → Absorbing → Finalized. Update absorbs data until
// Finalize, after which Update is a no-op and a second Finalize returns
// ErrAlreadyFinalized. Reset starts over. Destroy wipes all state.
//
// A Hasher is not safe for concurrent use. The zero value is ready to use
// and runs the scalar reference tier.
type Hasher struct {
	st      *engineState
	blocks  blocksFunc
	cleanup runtime.Cleanup
}

// engineState holds everything secret about a message in flight. It lives in
// its own allocation so a collected Hasher can still be wiped.
type engineState struct {
	words     [4]uint64
	buf       [BlockSize]byte
	n         int
	length    uint64
	finalized bool
}

func (e *engineState) reset() {
	e.words = iv
	clear(e.buf[:])
	e.n = 0
	e.length = 0
	e.finalized = false
}

// wipe zeroes every field, including the words, so nothing of the
// message survives.
func (e *engineState) wipe() {
	e.words = [4]uint64{}
	wipeBytes(e.buf[:])
	e.n = 0
	e.length = 0
	e.finalized = false
	runtime.KeepAlive(e)
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a Hasher bound to the scalar reference tier.
func New() *Hasher { return newHasher(blocksGeneric) }

// NewHash returns New as a hash.Hash, for use with crypto/hmac and other
// hash.Hash consumers.
func NewHash() hash.Hash { return New() }

func newHasher(blocks blocksFunc) *Hasher {
	h := &Hasher{blocks: blocks}
	h.ensure()
	return h
}

func (h *Hasher) ensure() {
	if h.blocks == nil {
		h.blocks = blocksGeneric
	}
	if h.st == nil {
		h.st = &engineState{}
		h.st.reset()
		h.cleanup = runtime.AddCleanup(h, (*engineState).wipe, h.st)
	}
}

// Update absorbs p. Full blocks are compressed eagerly, so fewer than
// BlockSize bytes are ever pending. It is a no-op after Finalize.
func (h *Hasher) Update(p []byte) {
	h.ensure()
	st := h.st
	if st.finalized {
		return
	}
	st.length += uint64(len(p))

	if st.n > 0 {
		k := copy(st.buf[st.n:], p)
		st.n += k
		p = p[k:]
		if st.n < BlockSize {
			return
		}
		h.blocks(&st.words, st.buf[:])
		st.n = 0
	}

	if full := len(p) &^ (BlockSize - 1); full > 0 {
		h.blocks(&st.words, p[:full])
		p = p[full:]
	}

	if len(p) > 0 {
		st.n = copy(st.buf[:], p)
	}
}

// Write absorbs p and implements io.Writer. Unlike Update it reports
// ErrAlreadyFinalized after Finalize instead of dropping the data silently.
func (h *Hasher) Write(p []byte) (int, error) {
	h.ensure()
	if h.st.finalized {
		return 0, ErrAlreadyFinalized
	}
	h.Update(p)
	return len(p), nil
}

// Finalize pads the message, runs the final compression and returns the
// digest. The state is wiped afterwards. Calling Finalize again fails with
// ErrAlreadyFinalized until Reset.
func (h *Hasher) Finalize() (Digest, error) {
	h.ensure()
	st := h.st
	if st.finalized {
		return Digest{}, ErrAlreadyFinalized
	}
	d := finish(h.blocks, st.words, st.buf[:st.n], st.length)
	st.wipe()
	st.finalized = true
	return d, nil
}

// Sum appends the digest of the data absorbed so far to b. It does not
// change the hasher state. Sum panics after Finalize, since the state it
// would read has been wiped.
func (h *Hasher) Sum(b []byte) []byte {
	h.ensure()
	if h.st.finalized {
		panic("vortex: Sum after Finalize")
	}
	d := finish(h.blocks, h.st.words, h.st.buf[:h.st.n], h.st.length)
	return append(b, d[:]...)
}

// Reset returns the hasher to the Fresh state.
func (h *Hasher) Reset() {
	h.ensure()
	h.st.reset()
}

// Size returns the digest size, 32.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the compression block size, 64.
func (h *Hasher) BlockSize() int { return BlockSize }

// Destroy zeroes the state words, the pending buffer and the length
// counter, and clears the finalized flag. It is safe at any point of the
// lifecycle, including mid-stream. A destroyed Hasher starts Fresh if used
// again.
func (h *Hasher) Destroy() {
	if h.st == nil {
		return
	}
	h.cleanup.Stop()
	h.st.wipe()
	h.st = nil
}

// WithHasher runs fn with a new reference Hasher and destroys it on every
// exit path, including a panic in fn.
func WithHasher(fn func(h *Hasher) error) error {
	h := New()
	defer h.Destroy()
	return fn(h)
}

// finish pads the tail onto a copy of words and returns the digest.
//
// Padding is 0x80, zeros up to 56 mod 64, then the message length in bits
// as a big-endian uint64. At least 9 bytes are always added, so the padded
// stream is a positive multiple of BlockSize even for block-aligned input.
func finish(blocks blocksFunc, words [4]uint64, tail []byte, length uint64) Digest {
	var last [2 * BlockSize]byte
	n := copy(last[:], tail)
	last[n] = 0x80
	end := paddedTailLen(n)
	binary.BigEndian.PutUint64(last[end-lengthSize:end], length<<3)
	blocks(&words, last[:end])

	var d Digest
	for i, w := range words {
		binary.LittleEndian.PutUint64(d[8*i:], w)
	}
	wipeBytes(last[:])
	words = [4]uint64{}
	runtime.KeepAlive(&words)
	return d
}

// paddedTailLen is the size of the final one or two blocks for a tail of
// n < BlockSize bytes.
func paddedTailLen(n int) int {
	if n < BlockSize-lengthSize {
		return BlockSize
	}
	return 2 * BlockSize
}
