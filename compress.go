package vortex

// blocksFunc compresses every full 64-byte block of p into state, in order.
// len(p) must be a multiple of BlockSize.
type blocksFunc func(state *[4]uint64, p []byte)

// blocksGeneric is the scalar reference: the round function exactly as
// defined, one state word at a time.
func blocksGeneric(s *[4]uint64, p []byte) {
	var w [8]uint64
	for len(p) >= BlockSize {
		for k := range w {
			w[k] = le64(p[8*k:])
		}
		for r := 0; r < rounds; r++ {
			for i := 0; i < 4; i++ {
				j := (i + r) & 3
				s[i] += w[2*j] + w[2*j+1]
				s[i] = rotl(s[i]) ^ s[j]
				s[i] *= mixK
			}
		}
		p = p[BlockSize:]
	}
	w = [8]uint64{}
}

// blocksPaired folds each word pair into one addend before the rounds.
// Addition mod 2^64 is associative, so s+w[2j]+w[2j+1] == s+(w[2j]+w[2j+1]).
func blocksPaired(s *[4]uint64, p []byte) {
	var m [4]uint64
	for len(p) >= BlockSize {
		m[0] = le64(p[0:]) + le64(p[8:])
		m[1] = le64(p[16:]) + le64(p[24:])
		m[2] = le64(p[32:]) + le64(p[40:])
		m[3] = le64(p[48:]) + le64(p[56:])
		for r := 0; r < rounds; r++ {
			for i := 0; i < 4; i++ {
				j := (i + r) & 3
				s[i] += m[j]
				s[i] = rotl(s[i]) ^ s[j]
				s[i] *= mixK
			}
		}
		p = p[BlockSize:]
	}
	m = [4]uint64{}
}

// blocksUnrolled keeps the state in registers and unrolls the four-round
// period of j = (i+r) mod 4. Word updates within a round stay in index
// order, so a step reading s[j] with j < i sees the value already written
// this round, as the reference does.
func blocksUnrolled(st *[4]uint64, p []byte) {
	s0, s1, s2, s3 := st[0], st[1], st[2], st[3]
	for len(p) >= BlockSize {
		m0 := le64(p[0:]) + le64(p[8:])
		m1 := le64(p[16:]) + le64(p[24:])
		m2 := le64(p[32:]) + le64(p[40:])
		m3 := le64(p[48:]) + le64(p[56:])
		for r := 0; r < rounds; r += 4 {
			// j = i
			s0 += m0
			s0 = (rotl(s0) ^ s0) * mixK
			s1 += m1
			s1 = (rotl(s1) ^ s1) * mixK
			s2 += m2
			s2 = (rotl(s2) ^ s2) * mixK
			s3 += m3
			s3 = (rotl(s3) ^ s3) * mixK

			// j = i+1
			s0 += m1
			s0 = (rotl(s0) ^ s1) * mixK
			s1 += m2
			s1 = (rotl(s1) ^ s2) * mixK
			s2 += m3
			s2 = (rotl(s2) ^ s3) * mixK
			s3 += m0
			s3 = (rotl(s3) ^ s0) * mixK

			// j = i+2
			s0 += m2
			s0 = (rotl(s0) ^ s2) * mixK
			s1 += m3
			s1 = (rotl(s1) ^ s3) * mixK
			s2 += m0
			s2 = (rotl(s2) ^ s0) * mixK
			s3 += m1
			s3 = (rotl(s3) ^ s1) * mixK

			// j = i+3
			s0 += m3
			s0 = (rotl(s0) ^ s3) * mixK
			s1 += m0
			s1 = (rotl(s1) ^ s0) * mixK
			s2 += m1
			s2 = (rotl(s2) ^ s1) * mixK
			s3 += m2
			s3 = (rotl(s3) ^ s2) * mixK
		}
		p = p[BlockSize:]
	}
	st[0], st[1], st[2], st[3] = s0, s1, s2, s3
}
