package vortex

const (
	ipad = 0x36
	opad = 0x5c
)

// MAC is a streaming HMAC-Vortex-256 (RFC 2104) computation.
//
// The key only lives inside the two Hasher states; both are wiped by
// Finalize and Destroy.
type MAC struct {
	inner, outer *Hasher
	finalized    bool
}

// NewMAC returns a MAC keyed with key, running on the scalar reference tier.
// Any key length is accepted; keys longer than BlockSize are hashed first.
func NewMAC(key []byte) *MAC { return newMAC(key, New) }

func newMAC(key []byte, newHasher func() *Hasher) *MAC {
	var kb [BlockSize]byte
	if len(key) > BlockSize {
		h := newHasher()
		h.Update(key)
		d, _ := h.Finalize()
		h.Destroy()
		copy(kb[:], d[:])
		wipeBytes(d[:])
	} else {
		copy(kb[:], key)
	}

	var pad [BlockSize]byte
	m := &MAC{inner: newHasher(), outer: newHasher()}
	for i := range kb {
		pad[i] = kb[i] ^ ipad
	}
	m.inner.Update(pad[:])
	for i := range kb {
		pad[i] = kb[i] ^ opad
	}
	m.outer.Update(pad[:])

	wipeBytes(pad[:])
	wipeBytes(kb[:])
	return m
}

// Write absorbs message bytes.
func (m *MAC) Write(p []byte) (int, error) {
	if m.finalized {
		return 0, ErrAlreadyFinalized
	}
	m.inner.Update(p)
	return len(p), nil
}

// Finalize returns H(opad ‖ H(ipad ‖ message)). A second call fails with
// ErrAlreadyFinalized.
func (m *MAC) Finalize() (Digest, error) {
	if m.finalized {
		return Digest{}, ErrAlreadyFinalized
	}
	m.finalized = true

	in, err := m.inner.Finalize()
	if err != nil {
		return Digest{}, err
	}
	m.outer.Update(in[:])
	wipeBytes(in[:])
	return m.outer.Finalize()
}

// Destroy wipes both hasher states. Safe to call at any point; a destroyed
// MAC reports ErrAlreadyFinalized from then on, since its key is gone.
func (m *MAC) Destroy() {
	m.inner.Destroy()
	m.outer.Destroy()
	m.finalized = true
}

// HMAC computes HMAC-Vortex-256 of message under key.
func HMAC(key, message []byte) Digest { return hmacWith(New, key, message) }

func hmacWith(newHasher func() *Hasher, key, message []byte) Digest {
	m := newMAC(key, newHasher)
	defer m.Destroy()
	m.inner.Update(message)
	d, _ := m.Finalize()
	return d
}

// VerifyHMAC reports, in constant time, whether mac is the HMAC of message
// under key.
func VerifyHMAC(key, message, mac []byte) bool {
	want := HMAC(key, message)
	defer wipeBytes(want[:])
	return EqualN(want[:], mac, Size)
}
