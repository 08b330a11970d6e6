package main

import (
	"fmt"
	"io"
)

// trackNameMarker is the meta-event tag (FF 03) that prefixes a track name.
var trackNameMarker = []byte{0xff, 0x03}

// nameSearchWindow caps how far into a track's event data the name scan
// looks. Names sit near the start of well-formed tracks, and the cap keeps
// the read bounded no matter what the track's declared size claims.
const nameSearchWindow = 1024

// fallbackTrackName names a track that has no discoverable name. Track 1
// carries the tempo map in a Format 1 file, so it gets called out as such.
func fallbackTrackName(number int) string {
	if number == 1 {
		return "Tempo Track"
	}
	return fmt.Sprintf("Track %d", number)
}

// extractTrackName scans the leading bytes of a track's event data for an
// FF 03 track-name meta event and returns its text. The reader must be
// positioned at the start of the event data; that position is restored before
// returning. Extraction never fails: damaged or nameless tracks get the
// fallback name.
func extractTrackName(r io.ReadSeeker, number int, declaredSize uint32) string {
	window := int64(declaredSize)
	if window > nameSearchWindow {
		window = nameSearchWindow
	}

	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return fallbackTrackName(number)
	}

	buf := make([]byte, window)
	_, readErr := io.ReadFull(r, buf)
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return fallbackTrackName(number)
	}
	if readErr != nil {
		return fallbackTrackName(number)
	}

	for _, pos := range findAll(buf, trackNameMarker) {
		lengthAt := pos + len(trackNameMarker)
		if lengthAt+1 >= len(buf) {
			continue
		}
		nameLen := int(buf[lengthAt])
		if lengthAt+1+nameLen > len(buf) {
			// name runs past the window; skip to the next match
			continue
		}
		name := string(buf[lengthAt+1 : lengthAt+1+nameLen])
		if name != "" {
			return name
		}
	}

	return fallbackTrackName(number)
}
