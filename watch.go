package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// isMidiFile reports whether path has a MIDI filename extension.
func isMidiFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

// absPath resolves path to absolute form, falling back to the given path
// when the working directory cannot be determined.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// underDir reports whether path lies in dir or below it, after resolving
// both to absolute form.
func underDir(dir, path string) bool {
	rel, err := filepath.Rel(absPath(dir), absPath(path))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// waitForStableSize polls a freshly created file until its size stops
// changing, so a split does not race whatever program is still writing it.
func waitForStableSize(path string) {
	var lastSize int64 = -1
	for i := 0; i < 20; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.Size() == lastSize {
			return
		}
		lastSize = info.Size()
		time.Sleep(250 * time.Millisecond)
	}
}

// watchAndSplit watches dir and splits every MIDI file created in it into
// outDir, until interrupted. Per-file failures are logged and watching
// continues.
func watchAndSplit(dir, outDir string, opts SplitOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ioErr(err, "failed to create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return ioErr(err, "failed to watch "+dir)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	log.Printf("Watching %s; splitting new MIDI files into %s", dir, outDir)

	// outputs landing inside the watched directory raise Create events of
	// their own; remember what each split wrote so those events are consumed
	// rather than split again
	written := make(map[string]bool)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create && isMidiFile(event.Name) {
				eventPath := absPath(event.Name)
				if written[eventPath] {
					delete(written, eventPath)
					continue
				}
				waitForStableSize(event.Name)
				report, err := SplitTracks(event.Name, outDir, opts)
				if err != nil {
					log.Printf("Error splitting %s: %v", event.Name, err)
					continue
				}
				for _, result := range report.Tracks {
					if result.File == "" {
						continue
					}
					outPath := filepath.Join(report.OutputDir, result.File)
					if underDir(dir, outPath) {
						written[absPath(outPath)] = true
					}
				}
				log.Printf("Split %s: %d of %d tracks written", event.Name, report.Written, report.TrackCount)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", werr)

		case <-stop:
			log.Println("Stopping watch")
			return nil
		}
	}
}
