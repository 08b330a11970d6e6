// Package main implements a splitter for multi-track Standard MIDI Files.
//
// A Format 1 MIDI file carries one tempo/meta track followed by parallel
// performance tracks, all sharing the header's time division. The splitter
// reads such a file, locates every MTrk chunk along with a display name for
// it, and writes each track back out as an independent single-track Format 1
// file.
//
// Basic usage:
//
//	mid, err := OpenMidiFile("song.mid")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer mid.Close()
//
//	for _, track := range mid.Tracks {
//		fmt.Printf("Track %d: %s (%d bytes)\n", track.Number, track.Name, track.Size)
//	}
//
//	writer := NewTrackWriter(mid, "out")
//	for _, track := range mid.Tracks {
//		if _, err := writer.WriteTrack(track); err != nil {
//			log.Printf("track %d failed: %v", track.Number, err)
//		}
//	}
//
// File format:
//
// The container grammar is two chunk types, both length-prefixed:
//   - Header chunk: "MThd" + length (always 6) + format + track count + division
//   - Track chunk: "MTrk" + length + that many bytes of event data
//
// Track event data is never decoded beyond a bounded scan for the FF 03
// track-name meta event; splitting is a byte-range copy. The division field
// is carried verbatim into every output so delta-times keep their meaning.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	// MidiHeaderMagic identifies the header chunk of a Standard MIDI File.
	MidiHeaderMagic = "MThd"
	// TrackMagic identifies a track chunk.
	TrackMagic = "MTrk"
	// MidiHeaderSize is the full size of the header chunk in bytes.
	MidiHeaderSize = 14
	// TrackHeaderSize is the size of a track chunk's magic + length prefix.
	TrackHeaderSize = 8
)

// MidiHeader holds the validated fields of the 14-byte header chunk. The
// division is kept as its two raw bytes so outputs inherit it untouched,
// whichever of the two encodings (metric or SMPTE) it uses.
type MidiHeader struct {
	Format     uint16  `json:"format"`
	TrackCount uint16  `json:"track_count"`
	Division   [2]byte `json:"-"`
}

// Track records where one MTrk chunk lives in the source file and the display
// name derived for it. Offset addresses the event data, just past the 8-byte
// chunk header; Size is the declared length of that data.
type Track struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Size   uint32 `json:"size"`
	Offset int64  `json:"offset"`
}

// MidiFile is an opened Format 1 MIDI file with its track index parsed. The
// underlying reader stays open for the writing phase, so callers must Close
// when finished.
type MidiFile struct {
	Header MidiHeader
	Tracks []Track

	path     string
	reader   *os.File
	fileSize int64
}

// OpenMidiFile opens filename and parses its header and track index. The
// returned MidiFile must be closed with Close when finished. Track event data
// stays on disk; only locations and names are held in memory.
//
// Returns an error if the file cannot be opened, is not a Format 1 MIDI
// file, or any track chunk violates the container grammar.
func OpenMidiFile(filename string) (*MidiFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, ioErr(err, "failed to open midi file")
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, ioErr(err, "failed to stat midi file")
	}

	mid := &MidiFile{
		path:     filename,
		reader:   file,
		fileSize: info.Size(),
	}

	if err := mid.readHeader(); err != nil {
		file.Close()
		return nil, err
	}

	if err := mid.readTrackIndex(); err != nil {
		file.Close()
		return nil, err
	}

	return mid, nil
}

// Close closes the underlying file reader. It should be called when finished
// with the MidiFile to free the handle held for track copying.
func (m *MidiFile) Close() error {
	if m.reader != nil {
		return m.reader.Close()
	}
	return nil
}

func (m *MidiFile) readHeader() error {
	if _, err := m.reader.Seek(0, io.SeekStart); err != nil {
		return ioErr(err, "failed to seek to header")
	}

	buf := make([]byte, MidiHeaderSize)
	if _, err := io.ReadFull(m.reader, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return invalidFormatErr("file too small for a midi header")
		}
		return ioErr(err, "failed to read midi header")
	}

	if string(buf[:4]) != MidiHeaderMagic {
		return invalidFormatErr("missing header magic")
	}

	if chunkLen := readU32(buf, 4); chunkLen != 6 {
		return invalidFormatErr("unexpected header size %d", chunkLen)
	}

	m.Header.Format = readU16(buf, 8)
	if m.Header.Format != 1 {
		return unsupportedFormatErr("only Format 1 supported, got format %d", m.Header.Format)
	}

	m.Header.TrackCount = readU16(buf, 10)
	copy(m.Header.Division[:], buf[12:14])

	return nil
}

// readTrackIndex walks the declared number of track chunks, recording each
// one's location and derived name. Event data is skipped over, not read;
// only the bounded name scan looks inside a track.
func (m *MidiFile) readTrackIndex() error {
	buf := make([]byte, TrackHeaderSize)

	for i := 0; i < int(m.Header.TrackCount); i++ {
		number := i + 1

		if _, err := io.ReadFull(m.reader, buf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return truncatedFileErr("track %d: chunk header past end of file", number)
			}
			return ioErr(err, "failed to read track header")
		}

		if string(buf[:4]) != TrackMagic {
			return invalidFormatErr("track %d: missing MTrk magic", number)
		}

		size := readU32(buf, 4)

		offset, err := m.reader.Seek(0, io.SeekCurrent)
		if err != nil {
			return ioErr(err, "failed to locate track data")
		}

		// Name extraction restores the read position and cannot fail;
		// nameless or damaged tracks get the fallback name.
		name := extractTrackName(m.reader, number, size)

		m.Tracks = append(m.Tracks, Track{
			Number: number,
			Name:   name,
			Size:   size,
			Offset: offset,
		})

		next := offset + int64(size)
		if next > m.fileSize {
			return truncatedFileErr("track %d: declared size %d runs past end of file", number, size)
		}
		if _, err := m.reader.Seek(next, io.SeekStart); err != nil {
			return ioErr(err, "failed to skip track data")
		}
	}

	return nil
}

// DivisionString renders the division field for display. The raw value is
// either metric (ticks per quarter note, high bit clear) or SMPTE (negative
// frame rate in the high byte, ticks per frame in the low byte).
func (h MidiHeader) DivisionString() string {
	div := readU16(h.Division[:], 0)
	if div&0x8000 != 0 {
		fps := -int8(div >> 8)
		return fmt.Sprintf("SMPTE %d fps, %d ticks per frame", fps, div&0x00ff)
	}
	return fmt.Sprintf("%d ticks per quarter note", div)
}
