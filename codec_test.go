package main

import (
	"bytes"
	"testing"
)

func TestReadU32(t *testing.T) {
	buf := []byte{0x00, 0x01, 0xE2, 0x40, 0x7F}

	if v := readU32(buf, 0); v != 123456 {
		t.Errorf("expected 123456, got %d", v)
	}

	// last offset that still fits
	if v := readU32(buf, 1); v != 0x01E2407F {
		t.Errorf("expected 0x01E2407F, got 0x%X", v)
	}
}

func TestReadU32_OutOfBounds(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF}

	testCases := []struct {
		name   string
		offset int
	}{
		{"PastEnd", 4},
		{"Straddling", 1},
		{"TooFewBytes", 0},
		{"Negative", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if v := readU32(buf, tc.offset); v != 0 {
				t.Errorf("expected 0 at offset %d, got %d", tc.offset, v)
			}
		})
	}
}

func TestReadU16(t *testing.T) {
	buf := []byte{0x01, 0xE0}

	if v := readU16(buf, 0); v != 480 {
		t.Errorf("expected 480, got %d", v)
	}
	if v := readU16(buf, 1); v != 0 {
		t.Errorf("expected 0 past the end, got %d", v)
	}
	if v := readU16(nil, 0); v != 0 {
		t.Errorf("expected 0 for empty buffer, got %d", v)
	}
}

func TestU32Bytes(t *testing.T) {
	want := []byte{0x00, 0x00, 0x00, 0x06}
	if got := u32Bytes(6); !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}

	if v := readU32(u32Bytes(0xDEADBEEF), 0); v != 0xDEADBEEF {
		t.Errorf("round trip failed: got 0x%X", v)
	}
}

func TestU16Bytes(t *testing.T) {
	want := []byte{0x01, 0xE0}
	if got := u16Bytes(480); !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}
}
