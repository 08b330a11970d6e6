package main

import "encoding/binary"

// Helpers for the fixed-width big-endian integers in SMF chunk headers.
// Reads are bounds-checked and yield zero when the buffer is too short, so
// scans over damaged files never index past the end.

// readU32 returns the big-endian uint32 at offset, or 0 when fewer than four
// bytes remain.
func readU32(b []byte, offset int) uint32 {
	if offset < 0 || offset+4 > len(b) {
		return 0
	}
	return binary.BigEndian.Uint32(b[offset:])
}

// readU16 returns the big-endian uint16 at offset, or 0 when fewer than two
// bytes remain.
func readU16(b []byte, offset int) uint16 {
	if offset < 0 || offset+2 > len(b) {
		return 0
	}
	return binary.BigEndian.Uint16(b[offset:])
}

// u32Bytes encodes v as four big-endian bytes.
func u32Bytes(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

// u16Bytes encodes v as two big-endian bytes.
func u16Bytes(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}
