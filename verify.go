package main

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// verifyTrackFile re-reads a written output with a full SMF parser and
// checks it is what the splitter promised: a parseable Format 1 file holding
// a single track. The byte copy can succeed while carrying event data a
// strict reader rejects, so a failure here is a warning about the source
// material, not a write error.
func verifyTrackFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer file.Close()

	data, err := smf.ReadFrom(file)
	if err != nil {
		return fmt.Errorf("verify: not readable as midi: %w", err)
	}

	if format := data.Format(); format != 1 {
		return fmt.Errorf("verify: expected format 1, got %d", format)
	}
	if n := len(data.Tracks); n != 1 {
		return fmt.Errorf("verify: expected a single track, got %d", n)
	}

	return nil
}
