package vortex

import (
	"errors"
	"io"
)

// DefaultBufferSize is the read size SumReader uses when given 0.
const DefaultBufferSize = 64 * 1024

// SumReader hashes everything r yields until io.EOF, reading at most
// bufferSize bytes at a time. bufferSize 0 selects DefaultBufferSize and
// anything else below BlockSize is raised to BlockSize.
//
// Every chunk a Read returns is absorbed whole before its error is looked
// at. A non-EOF error aborts the hash and is returned as an *IOError
// wrapping the source error; no digest is produced.
func SumReader(r io.Reader, bufferSize int) (Digest, error) {
	return sumReader(New(), r, bufferSize)
}

func sumReader(h *Hasher, r io.Reader, bufferSize int) (Digest, error) {
	defer h.Destroy()

	switch {
	case bufferSize == 0:
		bufferSize = DefaultBufferSize
	case bufferSize < BlockSize:
		bufferSize = BlockSize
	}
	buf := make([]byte, bufferSize)
	defer wipeBytes(buf)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Update(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return h.Finalize()
		}
		if err != nil {
			return Digest{}, &IOError{Op: "read", Err: err}
		}
	}
}
