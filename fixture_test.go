package main

import (
	"os"
	"path/filepath"
	"testing"
)

// Shared MIDI fixture builders. Containers are assembled as raw bytes so
// tests control the chunk layout exactly; event payloads stay valid SMF so
// written outputs can be checked with a real parser.

// divisionMetric480 is the division used by most fixtures: 480 ticks per
// quarter note.
var divisionMetric480 = [2]byte{0x01, 0xE0}

// namedTrackPayload builds track event data that opens with an FF 03 name
// event and closes with end-of-track.
func namedTrackPayload(name string) []byte {
	payload := []byte{
		0x00, 0xFF, 0x03, byte(len(name)), // delta 0, track name meta, length
	}
	payload = append(payload, name...)
	payload = append(payload,
		0x00, 0xFF, 0x2F, 0x00, // delta 0, end of track
	)
	return payload
}

// tempoTrackPayload builds a typical conductor track: tempo and time
// signature but no name event.
func tempoTrackPayload() []byte {
	return []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20, // tempo: 120 BPM
		0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08, // time signature: 4/4
		0x00, 0xFF, 0x2F, 0x00, // end of track
	}
}

// noteTrackPayload builds nameless event data with a single note.
func noteTrackPayload() []byte {
	return []byte{
		0x00, 0x90, 0x3C, 0x64, // note on: channel 0, C4, velocity 100
		0x60, 0x80, 0x3C, 0x00, // note off after 96 ticks
		0x00, 0xFF, 0x2F, 0x00, // end of track
	}
}

// trackChunk wraps payload in an MTrk chunk header.
func trackChunk(payload []byte) []byte {
	chunk := []byte(TrackMagic)
	chunk = append(chunk, u32Bytes(uint32(len(payload)))...)
	return append(chunk, payload...)
}

// buildMidiFile assembles a complete Format 1 file from track payloads.
func buildMidiFile(division [2]byte, payloads ...[]byte) []byte {
	data := []byte(MidiHeaderMagic)
	data = append(data, u32Bytes(6)...)
	data = append(data, u16Bytes(1)...) // format 1
	data = append(data, u16Bytes(uint16(len(payloads)))...)
	data = append(data, division[:]...)
	for _, payload := range payloads {
		data = append(data, trackChunk(payload)...)
	}
	return data
}

// writeTempMidi drops the given bytes into a temp file named like a real
// song and returns its path.
func writeTempMidi(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
