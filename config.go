package vortex

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"
)

// KeySize is the size of a SecurityConfig key.
const KeySize = 32

// SecurityConfig selects keyed hashing for SumSecure.
//
// The key is held in its own allocation, wiped by Destroy or, failing that,
// when the config is garbage collected.
type SecurityConfig struct {
	// KeyedMode binds the key into SumSecure digests. Default true.
	KeyedMode bool

	key     *secretKey
	cleanup runtime.Cleanup
}

type secretKey [KeySize]byte

func (k *secretKey) wipe() { wipeBytes(k[:]) }

// NewSecurityConfig returns a keyed config with a random key from
// crypto/rand.
func NewSecurityConfig() (*SecurityConfig, error) {
	return NewSecurityConfigFrom(rand.Reader)
}

// NewSecurityConfigFrom returns a keyed config whose key is read from r.
func NewSecurityConfigFrom(r io.Reader) (*SecurityConfig, error) {
	c := newSecurityConfig()
	if _, err := io.ReadFull(r, c.key[:]); err != nil {
		c.Destroy()
		return nil, &IOError{Op: "generate key", Err: err}
	}
	return c, nil
}

// NewSecurityConfigWithKey returns a keyed config using a copy of key.
// key must be exactly KeySize bytes; an empty or short key is rejected
// rather than padded.
func NewSecurityConfigWithKey(key []byte) (*SecurityConfig, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidConfiguration, KeySize, len(key))
	}
	c := newSecurityConfig()
	copy(c.key[:], key)
	return c, nil
}

func newSecurityConfig() *SecurityConfig {
	c := &SecurityConfig{KeyedMode: true, key: new(secretKey)}
	c.cleanup = runtime.AddCleanup(c, (*secretKey).wipe, c.key)
	return c
}

// Destroy zero-fills the key and disables keyed mode. A destroyed config is
// rejected by SumSecure.
func (c *SecurityConfig) Destroy() {
	if c.key == nil {
		return
	}
	c.cleanup.Stop()
	c.key.wipe()
	c.key = nil
	c.KeyedMode = false
}

func (c *SecurityConfig) String() string {
	return fmt.Sprintf("SecurityConfig(keyed=%t, key=%s)", c.KeyedMode, redacted(c.key != nil))
}

func redacted(present bool) string {
	if present {
		return "[redacted]"
	}
	return "<destroyed>"
}

// SumSecure hashes data under cfg.
//
// With KeyedMode set the digest is Sum(key ‖ Sum(key ‖ data)). Without it,
// or with a nil cfg, it is Sum(data). A destroyed cfg is an error, never a
// silent fallback to the unkeyed digest.
func SumSecure(data []byte, cfg *SecurityConfig) (Digest, error) {
	if cfg == nil {
		return Sum(data), nil
	}
	if cfg.key == nil {
		return Digest{}, fmt.Errorf("%w: config has been destroyed", ErrInvalidConfiguration)
	}
	if !cfg.KeyedMode {
		return Sum(data), nil
	}

	var out Digest
	err := WithHasher(func(h *Hasher) error {
		h.Update(cfg.key[:])
		h.Update(data)
		inner, err := h.Finalize()
		if err != nil {
			return err
		}
		h.Reset()
		h.Update(cfg.key[:])
		h.Update(inner[:])
		wipeBytes(inner[:])
		out, err = h.Finalize()
		return err
	})
	return out, err
}
