package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// unsafeNameChars cannot appear in filenames on at least one supported
// platform; each occurrence is replaced with an underscore.
const unsafeNameChars = `<>:"/\|?*`

// TrackWriter writes each discovered track of a source file as an
// independent single-track Format 1 MIDI file in an output directory.
type TrackWriter struct {
	source   *MidiFile
	outDir   string
	baseName string
}

// NewTrackWriter creates a writer that splits source into outDir. Output
// filenames are prefixed with the source file's base name.
func NewTrackWriter(source *MidiFile, outDir string) *TrackWriter {
	base := filepath.Base(source.path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return &TrackWriter{
		source:   source,
		outDir:   outDir,
		baseName: base,
	}
}

// outputHeader synthesizes the 14-byte header for a single-track output:
// Format 1, one track, the source's division bytes unchanged.
func (w *TrackWriter) outputHeader() []byte {
	buf := make([]byte, 0, MidiHeaderSize)
	buf = append(buf, MidiHeaderMagic...)
	buf = append(buf, u32Bytes(6)...) // header chunk length
	buf = append(buf, u16Bytes(1)...) // format
	buf = append(buf, u16Bytes(1)...) // track count
	buf = append(buf, w.source.Header.Division[:]...)
	return buf
}

// sanitizeTrackName replaces filesystem-hostile bytes with underscores.
// Names come out of the file as raw bytes with no guarantee of valid UTF-8,
// so the replacement works byte-wise and leaves every other byte, and the
// length, untouched.
func sanitizeTrackName(name string) string {
	buf := []byte(name)
	for i, c := range buf {
		if strings.IndexByte(unsafeNameChars, c) >= 0 {
			buf[i] = '_'
		}
	}
	return string(buf)
}

// createOutput opens a new output file for the given sanitized name without
// ever clobbering an existing one. On a name collision it retries with an
// incrementing " (Copy k)" suffix until creation succeeds. Create-exclusive
// makes the existence check and the create a single atomic step.
func (w *TrackWriter) createOutput(safeName string) (*os.File, string, error) {
	filename := fmt.Sprintf("%s - %s.mid", w.baseName, safeName)

	for copyCount := 1; ; copyCount++ {
		path := filepath.Join(w.outDir, filename)

		out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return out, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", ioErr(err, "cannot create output file "+path)
		}

		filename = fmt.Sprintf("%s - %s (Copy %d).mid", w.baseName, safeName, copyCount)
	}
}

// WriteTrack writes one track as a complete Format 1 file and returns the
// path it was written to. The source's original chunk header and payload are
// copied verbatim after the synthesized file header. A source that ends
// before the declared track length yields a shorter file; a failed write
// removes the partial output and reports the path.
func (w *TrackWriter) WriteTrack(track Track) (string, error) {
	out, path, err := w.createOutput(sanitizeTrackName(track.Name))
	if err != nil {
		return "", err
	}

	if err := w.writeTrackTo(out, track); err != nil {
		out.Close()
		os.Remove(path)
		return "", ioErr(err, "failed to write "+path)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", ioErr(err, "failed to close "+path)
	}

	return path, nil
}

func (w *TrackWriter) writeTrackTo(out *os.File, track Track) error {
	if _, err := out.Write(w.outputHeader()); err != nil {
		return err
	}

	// The recorded offset addresses the event data; back up over the 8-byte
	// chunk header so the copy carries it along.
	if _, err := w.source.reader.Seek(track.Offset-TrackHeaderSize, io.SeekStart); err != nil {
		return err
	}

	// A source exhausted before the declared length just yields a shorter
	// file; only real read or write failures surface.
	_, err := io.CopyN(out, w.source.reader, TrackHeaderSize+int64(track.Size))
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
