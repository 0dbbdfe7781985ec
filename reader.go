package tsv

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Reader reads records from a delimited text file, one record per line.
type Reader struct {
	// Delimiters holds the runes that end a field. Any one of them splits
	// the line. Default is a single tab.
	Delimiters string
	// EndOnBlankLine makes Read report io.EOF at the first empty line
	// instead of returning a record with a single empty field.
	EndOnBlankLine bool

	file    *os.File
	src     *bufio.Reader
	line    bytes.Buffer
	decoder *encoding.Decoder
}

// OpenReader opens the named file for reading.
// Errors from the file system are returned as is, so
// errors.Is(err, fs.ErrNotExist) reports a missing file.
func OpenReader(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &Reader{
		Delimiters: string(DefaultDelimiter),
		file:       f,
		src:        bufio.NewReader(transform.NewReader(f, bomReader())),
	}, nil
}

// Read returns the fields of the next line.
//
// At end of file, or at an empty line when EndOnBlankLine is set,
// Read returns (nil, io.EOF). A line without any delimiter is a record
// with one field; an empty line is a record with one empty field.
func (r *Reader) Read() ([]string, error) {
	if r.file == nil {
		return nil, ErrClosed
	}
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if r.EndOnBlankLine && len(line) == 0 {
		return nil, io.EOF
	}
	if line, err = fromCodePage(r.decoder, line); err != nil {
		return nil, err
	}
	return splitAny(line, r.delimiters()), nil
}

// TryRead is Read with the end of data reported as found == false
// rather than as io.EOF.
func (r *Reader) TryRead() (record []string, found bool, err error) {
	record, err = r.Read()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// Decode reads the next line into the struct pointed to by v.
// See Unmarshal for the field mapping.
func (r *Reader) Decode(v interface{}) error {
	record, err := r.Read()
	if err != nil {
		return err
	}
	return Unmarshal(record, v)
}

// SetCodePage sets the code page used to decode non-ASCII lines.
// The default is 0, meaning lines are taken as UTF-8.
// Unsupported pages are ignored.
//
// Supported code pages:
//	437   - US MS-DOS
//	850   - International MS-DOS
//	852   - Eastern European MS-DOS
//	865   - Nordic MS-DOS
//	866   - Russian MS-DOS
//	1250  - Eastern European Windows
//	1251  - Russian Windows
//	1252  - Windows ANSI
//	1253  - Greek Windows
//	1254  - Turkish Windows
//	1255  - Hebrew Windows
//	1256  - Arabic Windows
//	10000 - Standard Macintosh
//	10007 - Russian Macintosh
//	28591 - ISO 8859-1
//	28595 - ISO 8859-5
func (r *Reader) SetCodePage(cp int) {
	cm := charMapByPage(cp)
	if cm == nil {
		return
	}
	r.decoder = cm.NewDecoder()
}

// Close releases the underlying file. Closing a closed Reader is a no-op.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.src = nil
	return err
}

func (r *Reader) delimiters() string {
	if r.Delimiters == "" {
		return string(DefaultDelimiter)
	}
	return r.Delimiters
}

// readLine returns the next line without its terminator. A line ends at
// "\n", "\r\n" or a lone "\r". A last line with no terminator is still a
// line; io.EOF is returned only when nothing is left.
func (r *Reader) readLine() (string, error) {
	r.line.Reset()
	for {
		b, err := r.src.ReadByte()
		if err == io.EOF && r.line.Len() > 0 {
			return r.line.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch b {
		case '\n':
			return r.line.String(), nil
		case '\r':
			if next, err := r.src.Peek(1); err == nil && next[0] == '\n' {
				_, _ = r.src.ReadByte()
			}
			return r.line.String(), nil
		}
		r.line.WriteByte(b)
	}
}
