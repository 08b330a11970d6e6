package main

import (
	"os"
	"path/filepath"
)

// TrackResult is the outcome of writing one track.
type TrackResult struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Size    uint32 `json:"size"`
	File    string `json:"file,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// SplitReport summarizes a whole split run.
type SplitReport struct {
	Input      string        `json:"input"`
	OutputDir  string        `json:"output_dir"`
	Division   string        `json:"division"`
	TrackCount int           `json:"track_count"`
	Written    int           `json:"written"`
	Failed     int           `json:"failed"`
	Warnings   int           `json:"warnings,omitempty"`
	Tracks     []TrackResult `json:"tracks"`
}

// SplitOptions adjusts a split run. Found, when set, is called once after
// discovery with the parsed header and track index; Progress is called per
// track as soon as its outcome is known. Verify re-reads each written file
// with a strict SMF parser and records failures as warnings.
type SplitOptions struct {
	Verify   bool
	Found    func(header MidiHeader, tracks []Track)
	Progress func(TrackResult)
}

// SplitTracks splits the Format 1 MIDI file at inputPath into one file per
// track under outDir, creating the directory if needed. Discovery completes
// before anything touches the filesystem, so a parse failure leaves no
// output behind. Individual track write failures are recorded in the report
// and do not stop the remaining tracks; the returned error is only for
// conditions that end the whole run.
func SplitTracks(inputPath, outDir string, opts SplitOptions) (*SplitReport, error) {
	mid, err := OpenMidiFile(inputPath)
	if err != nil {
		return nil, err
	}
	defer mid.Close()

	if opts.Found != nil {
		opts.Found(mid.Header, mid.Tracks)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, ioErr(err, "cannot create output directory "+outDir)
	}

	writer := NewTrackWriter(mid, outDir)

	report := &SplitReport{
		Input:      inputPath,
		OutputDir:  outDir,
		Division:   mid.Header.DivisionString(),
		TrackCount: len(mid.Tracks),
	}

	for _, track := range mid.Tracks {
		result := TrackResult{
			Number: track.Number,
			Name:   track.Name,
			Size:   track.Size,
		}

		path, err := writer.WriteTrack(track)
		if err != nil {
			result.Error = err.Error()
			report.Failed++
		} else {
			result.File = filepath.Base(path)
			report.Written++

			if opts.Verify {
				if verr := verifyTrackFile(path); verr != nil {
					result.Warning = verr.Error()
					report.Warnings++
				}
			}
		}

		if opts.Progress != nil {
			opts.Progress(result)
		}
		report.Tracks = append(report.Tracks, result)
	}

	return report, nil
}
