// Package vortex provides the Vortex-256 hash: a streaming 64-byte-block
// compression hash with a 32-byte digest, an RFC 2104 HMAC built on it, and a
// capability-tiered dispatcher that picks among interchangeable backends.
//
// Every backend tier computes the same function. A tier is only a different
// way of running the compression rounds; on any CPU, for any input, all tiers
// return the digest the scalar reference returns. Tiers that cannot prove this
// at startup are never selected.
//
// The round structure and constants are a reference construction, not a
// cryptanalyzed design. Use Vortex-256 where a keyed, fast, deterministic
// digest is needed, not as a drop-in for SHA-2 or SHA-3.
//
// Build with the purego tag to disable CPU feature probing; every dispatcher
// then runs the scalar tier.
package vortex

import (
	"encoding/hex"
	"math/bits"
)

const (
	// Size is the size of a Vortex-256 digest in bytes.
	Size = 32

	// BlockSize is the compression block size: eight 64-bit words.
	BlockSize = 64

	// rounds per block. Must stay a multiple of 4 for the unrolled kernels.
	rounds = 8

	// rotation applied after each word addition.
	rotation = 13

	// mixK is the odd multiplier applied at the end of every step.
	mixK = 0xFF51AFD7ED558CCD

	// lengthSize is the trailing big-endian bit-length field of the padding.
	lengthSize = 8
)

// iv is the initial state of every Hasher.
var iv = [4]uint64{
	0x9E3779B97F4A7C15,
	0xB5297A4D6E2F8C3D,
	0x1B873593F4A7C159,
	0xA3B4C5D6E7F8091A,
}

// Digest is a Vortex-256 digest. Compare digests used for authentication
// with Equal, never with ==.
type Digest [Size]byte

// Hex returns the lowercase hex encoding of d.
func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }

func (d Digest) String() string { return d.Hex() }

// Equal reports whether d and other are equal in constant time.
func (d Digest) Equal(other Digest) bool { return Equal(d[:], other[:]) }

// IsZero reports whether every byte of d is zero, in constant time.
func (d Digest) IsZero() bool {
	var acc byte
	for _, b := range d {
		acc |= b
	}
	return acc == 0
}

// ParseDigest decodes a 64-character hex string into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if hex.DecodedLen(len(s)) != Size {
		return d, &ErrInvalidDigest{Length: hex.DecodedLen(len(s))}
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, &ErrInvalidDigest{Length: Size, cause: err}
	}
	return d, nil
}

// Sum computes the Vortex-256 digest of data with the scalar reference
// streaming engine.
func Sum(data []byte) Digest {
	h := newHasher(blocksGeneric)
	defer h.Destroy()
	h.Update(data)
	d, _ := h.Finalize()
	return d
}

// le64 reads a little-endian uint64 from at least 8 bytes.
func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func rotl(x uint64) uint64 { return bits.RotateLeft64(x, rotation) }
