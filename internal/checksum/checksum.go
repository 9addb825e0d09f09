// Package checksum implements the reflected CRC-32 used by the ZIP format.
//
// The algorithm matches the standard ZIP/PNG definition: polynomial
// 0xEDB88320, initial register 0xFFFFFFFF, final XOR 0xFFFFFFFF, processed
// least-significant bit first via a 256-entry lookup table.
package checksum

import "sync"

// poly is the reversed CRC-32 generator polynomial (IEEE 802.3).
const poly = 0xEDB88320

// table returns the 256-entry lookup table. The table is built on first
// use and is read-only afterwards.
var table = sync.OnceValue(func() *[256]uint32 {
	var t [256]uint32
	for i := range t {
		crc := uint32(i)
		for range 8 {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return &t
})

// Update adds the bytes in p to the running checksum crc and returns the
// new value. Update(0, p) is equivalent to Sum(p).
func Update(crc uint32, p []byte) uint32 {
	t := table()
	crc = ^crc
	for _, b := range p {
		crc = (crc >> 8) ^ t[(crc^uint32(b))&0xFF]
	}
	return ^crc
}

// Sum returns the CRC-32 checksum of p. Sum(nil) == 0.
func Sum(p []byte) uint32 {
	return Update(0, p)
}
