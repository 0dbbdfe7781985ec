package tsv

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/text/encoding"
)

// Writer writes records to a delimited text file, one record per line.
// Every line ends with "\r\n".
type Writer struct {
	// Comma is the field delimiter. Default is '\t'.
	Comma rune

	file    *os.File
	dst     *bufio.Writer
	encoder *encoding.Encoder
	err     error
}

// OpenWriter opens the named file for writing. With appendMode set, records
// are added after the existing content of the file; otherwise the file
// is created or truncated.
func OpenWriter(name string, appendMode bool) (*Writer, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(name, flag, 0666)
	if err != nil {
		return nil, err
	}
	return &Writer{
		Comma: DefaultDelimiter,
		file:  f,
		dst:   bufio.NewWriter(f),
	}, nil
}

// Write joins record with Comma and writes it as one line.
// Fields are not escaped. A field the code page cannot encode fails only
// that record; nothing of it is written. The first I/O error is kept and
// returned by every later call.
func (w *Writer) Write(record []string) error {
	if w.file == nil {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	line, err := w.join(record)
	if err != nil {
		return err
	}
	if err := w.fileWrite(line); err != nil {
		return err
	}
	return w.fileWrite(lineEnd)
}

// Encode writes the struct v as one line. See Marshal for the field mapping.
func (w *Writer) Encode(v interface{}) error {
	record, err := Marshal(v)
	if err != nil {
		return err
	}
	return w.Write(record)
}

// Flush writes any buffered lines to the file.
func (w *Writer) Flush() error {
	if w.file == nil {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// SetCodePage sets the code page used to encode non-ASCII fields.
// The default is 0, meaning fields are written as UTF-8.
// See Reader.SetCodePage for the supported pages.
func (w *Writer) SetCodePage(cp int) {
	cm := charMapByPage(cp)
	if cm == nil {
		return
	}
	w.encoder = cm.NewEncoder()
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

// Close flushes buffered lines and releases the file. The file is
// released even when the flush fails, and the flush error is returned.
// Closing a closed Writer is a no-op.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.dst.Flush()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	w.file = nil
	w.dst = nil
	return err
}

func (w *Writer) join(record []string) (string, error) {
	comma := w.Comma
	if comma == 0 {
		comma = DefaultDelimiter
	}
	sep, err := toCodePage(w.encoder, string(comma))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i, field := range record {
		if i > 0 {
			sb.WriteString(sep)
		}
		s, err := toCodePage(w.encoder, field)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (w *Writer) fileWrite(s string) error {
	if _, err := w.dst.WriteString(s); err != nil {
		w.err = err
		return err
	}
	return nil
}
