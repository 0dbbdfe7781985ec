// Package tsv reads and writes delimited text record files.
//
// A record is one line of text split on a delimiter (tab by default).
// There is no quoting or escaping: a field that contains the delimiter
// produces an ambiguous line on write and extra fields on read.
// Lines are written with a CRLF terminator on every platform.
//
// ReaderWriter is a compatibility layer over Reader and Writer for
// callers written against the older two-column API. It keeps that API's
// failures on end of data and on short records.
package tsv

import "errors"

// DefaultDelimiter separates fields when no other delimiter is configured.
const DefaultDelimiter = '\t'

const lineEnd = "\r\n"

var (
	// ErrClosed is returned when a Reader or Writer is used after Close.
	ErrClosed = errors.New("tsv: file already closed")

	// ErrNilReference is returned by ReaderWriter where the older API
	// dereferenced a missing record or an unbound stream.
	ErrNilReference = errors.New("tsv: nil reference")

	// ErrIndexOutOfRange is returned by ReaderWriter.ReadStrict when the
	// record does not carry a second column.
	ErrIndexOutOfRange = errors.New("tsv: index out of range")

	// ErrUnknownMode is returned when a ReaderWriter is opened with a mode
	// other than ModeRead or ModeWrite.
	ErrUnknownMode = errors.New("tsv: unknown file mode")
)
