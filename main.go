package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var (
	verifyOutputs bool
	jsonOutput    bool
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var rootCmd = &cobra.Command{
	Use:   "midisplit [input.mid] [output-dir]",
	Short: "Split a Format 1 MIDI file into one file per track",
	Long: `midisplit reads a multi-track Format 1 Standard MIDI File and writes
every track out as an independent single-track Format 1 file, named after
the track name embedded in its events.

Run it with no arguments to be prompted for the paths interactively.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, outDir, err := pathProviderFor(args).SplitPaths()
		if err != nil {
			return err
		}
		return runSplit(input, outDir)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <file.mid>",
	Short: "List the tracks a split would produce, without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir> <output-dir>",
	Short: "Watch a directory and split every MIDI file created in it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchAndSplit(args[0], args[1], SplitOptions{Verify: verifyOutputs})
	},
}

func init() {
	rootCmd.Flags().BoolVar(&verifyOutputs, "verify", false, "Re-read each written file with a strict SMF parser")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the split report as JSON")
	infoCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output track information as JSON")
	watchCmd.Flags().BoolVar(&verifyOutputs, "verify", false, "Re-read each written file with a strict SMF parser")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCanceled) {
			fmt.Fprintln(os.Stderr, "canceled")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", errorKindLabel(err), err)
		os.Exit(1)
	}
}

// pathProviderFor picks how the two paths are obtained: straight from the
// arguments when both are present, otherwise the interactive prompt fills in
// the rest.
func pathProviderFor(args []string) pathProvider {
	if len(args) == 2 {
		return argPaths{input: args[0], outDir: args[1]}
	}

	preset := ""
	if len(args) == 1 {
		preset = args[0]
	}
	return promptPaths{input: preset}
}

func runSplit(input, outDir string) error {
	opts := SplitOptions{Verify: verifyOutputs}
	if !jsonOutput {
		opts.Found = func(header MidiHeader, tracks []Track) {
			fmt.Println(titleStyle.Render(fmt.Sprintf("Splitting %s", input)))
			fmt.Println(mutedStyle.Render(fmt.Sprintf("%d tracks, %s", len(tracks), header.DivisionString())))
			fmt.Println()
		}
		opts.Progress = printTrackResult
	}

	report, err := SplitTracks(input, outDir, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		printSummary(report)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d tracks failed to write", report.Failed, report.TrackCount)
	}
	return nil
}

func printTrackResult(result TrackResult) {
	line := fmt.Sprintf("Track %d: %s (%d bytes)", result.Number, result.Name, result.Size)

	switch {
	case result.Error != "":
		fmt.Printf("  %s %s\n", failStyle.Render("x"), line)
		fmt.Printf("    %s\n", failStyle.Render(result.Error))
	case result.Warning != "":
		fmt.Printf("  %s %s -> %s\n", warnStyle.Render("!"), line, result.File)
		fmt.Printf("    %s\n", warnStyle.Render(result.Warning))
	default:
		fmt.Printf("  %s %s -> %s\n", successStyle.Render("+"), line, result.File)
	}
}

func printSummary(report *SplitReport) {
	fmt.Println()
	if report.Failed == 0 {
		fmt.Println(successStyle.Render(fmt.Sprintf("Split %d tracks into %s", report.Written, report.OutputDir)))
	} else {
		fmt.Println(failStyle.Render(fmt.Sprintf("Wrote %d of %d tracks into %s (%d failed)",
			report.Written, report.TrackCount, report.OutputDir, report.Failed)))
	}
	if report.Warnings > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d outputs failed verification", report.Warnings)))
	}
}

func runInfo(input string) error {
	mid, err := OpenMidiFile(input)
	if err != nil {
		return err
	}
	defer mid.Close()

	if jsonOutput {
		view := struct {
			File     string  `json:"file"`
			Format   uint16  `json:"format"`
			Division string  `json:"division"`
			Tracks   []Track `json:"tracks"`
		}{
			File:     input,
			Format:   mid.Header.Format,
			Division: mid.Header.DivisionString(),
			Tracks:   mid.Tracks,
		}

		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("MIDI File: %s\n", input)
	fmt.Printf("Format: %d\n", mid.Header.Format)
	fmt.Printf("Division: %s\n", mid.Header.DivisionString())
	fmt.Printf("Number of tracks: %d\n", len(mid.Tracks))
	fmt.Println()

	for _, track := range mid.Tracks {
		fmt.Printf("Track %d: %s (%d bytes)\n", track.Number, track.Name, track.Size)
	}
	return nil
}
