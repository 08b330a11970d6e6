package main

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Error kinds for everything that can go wrong while splitting. Parse and
// I/O errors carry one of these tags so the CLI can word its diagnostic
// without string-matching messages.
const (
	KindInvalidFormat     = ftag.Kind("invalid_format")
	KindUnsupportedFormat = ftag.Kind("unsupported_format")
	KindTruncatedFile     = ftag.Kind("truncated_file")
	KindIOError           = ftag.Kind("io_error")
)

// invalidFormatErr reports a structural violation of the chunk grammar.
func invalidFormatErr(format string, args ...any) error {
	return fault.New(fmt.Sprintf(format, args...), ftag.With(KindInvalidFormat))
}

// unsupportedFormatErr reports a well-formed file this tool does not handle.
func unsupportedFormatErr(format string, args ...any) error {
	return fault.New(fmt.Sprintf(format, args...), ftag.With(KindUnsupportedFormat))
}

// truncatedFileErr reports a declared length running past the end of the file.
func truncatedFileErr(format string, args ...any) error {
	return fault.New(fmt.Sprintf(format, args...), ftag.With(KindTruncatedFile))
}

// ioErr wraps an underlying I/O failure with context about what was being
// touched when it happened.
func ioErr(err error, context string) error {
	return fault.Wrap(err, fmsg.With(context), ftag.With(KindIOError))
}

// errorKindLabel names an error's kind for the one-line CLI diagnostic.
func errorKindLabel(err error) string {
	switch ftag.Get(err) {
	case KindInvalidFormat:
		return "invalid format"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindTruncatedFile:
		return "truncated file"
	case KindIOError:
		return "i/o error"
	}
	return "error"
}
