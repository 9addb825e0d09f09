// Package format encodes the fixed-layout records of the classic ZIP
// container: local file headers, central directory headers, and the
// end-of-central-directory record. All multi-byte fields are
// little-endian. Only the store method (0) is emitted, so compressed and
// uncompressed sizes are always equal, and timestamps, permissions, and
// extra fields are zeroed.
package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Record signatures.
const (
	LocalHeaderSig   = 0x04034b50
	CentralHeaderSig = 0x02014b50
	EOCDSig          = 0x06054b50
)

// Fixed record lengths, excluding the variable name bytes.
const (
	LocalHeaderLen   = 30
	CentralHeaderLen = 46
	EOCDLen          = 22
)

// zipVersion is both the version-made-by and version-needed-to-extract
// value: 1.0, the minimum for store-only archives without Zip64.
const zipVersion = 10

// MaxNameLen is the largest entry name the 16-bit name-length field can
// express, in UTF-8 bytes.
const MaxNameLen = 65535

// ErrNameEncoding is returned when an entry name is not valid UTF-8 or is
// too long for its length field.
var ErrNameEncoding = errors.New("zipstore: entry name not encodable")

// ValidateName reports whether name can be stored in a header: it must be
// valid UTF-8 and at most MaxNameLen bytes.
func ValidateName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: not valid UTF-8", ErrNameEncoding)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: name is %d bytes, limit %d", ErrNameEncoding, len(name), MaxNameLen)
	}
	return nil
}

// EncodeLocalHeader serializes the local file header for one entry.
// size is both the compressed and uncompressed length (store method).
func EncodeLocalHeader(name string, crc, size uint32) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	buf := make([]byte, LocalHeaderLen+len(name))
	binary.LittleEndian.PutUint32(buf[0:4], LocalHeaderSig)
	binary.LittleEndian.PutUint16(buf[4:6], zipVersion) // version needed to extract
	binary.LittleEndian.PutUint16(buf[6:8], 0)          // general purpose flags
	binary.LittleEndian.PutUint16(buf[8:10], 0)         // compression method: store
	binary.LittleEndian.PutUint16(buf[10:12], 0)        // modification time
	binary.LittleEndian.PutUint16(buf[12:14], 0)        // modification date
	binary.LittleEndian.PutUint32(buf[14:18], crc)
	binary.LittleEndian.PutUint32(buf[18:22], size) // compressed size
	binary.LittleEndian.PutUint32(buf[22:26], size) // uncompressed size
	binary.LittleEndian.PutUint16(buf[26:28], uint16(len(name)))
	binary.LittleEndian.PutUint16(buf[28:30], 0) // extra field length
	copy(buf[LocalHeaderLen:], name)
	return buf, nil
}

// EncodeCentralHeader serializes the central directory record for one
// entry. offset is the byte position of the entry's local header within
// the archive.
func EncodeCentralHeader(name string, crc, size, offset uint32) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	buf := make([]byte, CentralHeaderLen+len(name))
	binary.LittleEndian.PutUint32(buf[0:4], CentralHeaderSig)
	binary.LittleEndian.PutUint16(buf[4:6], zipVersion) // version made by
	binary.LittleEndian.PutUint16(buf[6:8], zipVersion) // version needed to extract
	binary.LittleEndian.PutUint16(buf[8:10], 0)         // general purpose flags
	binary.LittleEndian.PutUint16(buf[10:12], 0)        // compression method: store
	binary.LittleEndian.PutUint16(buf[12:14], 0)        // modification time
	binary.LittleEndian.PutUint16(buf[14:16], 0)        // modification date
	binary.LittleEndian.PutUint32(buf[16:20], crc)
	binary.LittleEndian.PutUint32(buf[20:24], size) // compressed size
	binary.LittleEndian.PutUint32(buf[24:28], size) // uncompressed size
	binary.LittleEndian.PutUint16(buf[28:30], uint16(len(name)))
	binary.LittleEndian.PutUint16(buf[30:32], 0) // extra field length
	binary.LittleEndian.PutUint16(buf[32:34], 0) // comment length
	binary.LittleEndian.PutUint16(buf[34:36], 0) // disk number start
	binary.LittleEndian.PutUint16(buf[36:38], 0) // internal attributes
	binary.LittleEndian.PutUint32(buf[38:42], 0) // external attributes
	binary.LittleEndian.PutUint32(buf[42:46], offset)
	copy(buf[CentralHeaderLen:], name)
	return buf, nil
}

// EncodeEOCD serializes the end-of-central-directory record. count is the
// total entry count, cdSize the byte length of the central directory, and
// cdOffset its starting position within the archive.
func EncodeEOCD(count uint16, cdSize, cdOffset uint32) []byte {
	buf := make([]byte, EOCDLen)
	binary.LittleEndian.PutUint32(buf[0:4], EOCDSig)
	binary.LittleEndian.PutUint16(buf[4:6], 0)       // disk number
	binary.LittleEndian.PutUint16(buf[6:8], 0)       // disk with central directory
	binary.LittleEndian.PutUint16(buf[8:10], count)  // entries on this disk
	binary.LittleEndian.PutUint16(buf[10:12], count) // entries total
	binary.LittleEndian.PutUint32(buf[12:16], cdSize)
	binary.LittleEndian.PutUint32(buf[16:20], cdOffset)
	binary.LittleEndian.PutUint16(buf[20:22], 0) // comment length
	return buf
}
