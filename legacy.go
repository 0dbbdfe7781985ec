package tsv

import (
	"fmt"
	"io"
)

// Mode selects the direction a ReaderWriter is opened in.
type Mode int

const (
	ModeRead  Mode = 1
	ModeWrite Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Column is one output slot of ReaderWriter.ReadTolerant.
// Valid is false when the record had no field for the slot.
type Column struct {
	Value string
	Valid bool
}

func (c Column) String() string {
	if !c.Valid {
		return "<unset>"
	}
	return c.Value
}

// ReaderWriter keeps the two-column API of the older tab-separated
// reader/writer, including the errors its callers rely on.
// It is bound to either a Reader or a Writer, never both.
// Prefer Reader and Writer in new code.
type ReaderWriter struct {
	// stream is a *Reader or a *Writer once opened.
	stream io.Closer
}

// NewReaderWriter returns an unopened ReaderWriter.
func NewReaderWriter() *ReaderWriter {
	return &ReaderWriter{}
}

// OpenReaderWriter creates a ReaderWriter and opens name in mode.
func OpenReaderWriter(name string, mode Mode) (*ReaderWriter, error) {
	rw := NewReaderWriter()
	if err := rw.Open(name, mode); err != nil {
		return nil, err
	}
	return rw, nil
}

// Open binds the ReaderWriter to name. ModeRead reads tab separated lines
// and does not stop at blank lines; ModeWrite truncates the file. Any other
// mode fails with ErrUnknownMode. A previously bound file is closed first.
func (rw *ReaderWriter) Open(name string, mode Mode) error {
	if err := rw.Close(); err != nil {
		return err
	}
	rw.stream = nil
	switch mode {
	case ModeRead:
		r, err := OpenReader(name)
		if err != nil {
			return err
		}
		r.Delimiters = string(DefaultDelimiter)
		r.EndOnBlankLine = false
		rw.stream = r
	case ModeWrite:
		w, err := OpenWriter(name, false)
		if err != nil {
			return err
		}
		w.Comma = DefaultDelimiter
		rw.stream = w
	default:
		return fmt.Errorf("tsv: Open %q: %w %v", name, ErrUnknownMode, mode)
	}
	return nil
}

// Write writes columns as one tab separated line.
// It fails with ErrNilReference unless opened with ModeWrite.
func (rw *ReaderWriter) Write(columns ...string) error {
	w, ok := rw.stream.(*Writer)
	if !ok {
		return fmt.Errorf("tsv: Write: %w", ErrNilReference)
	}
	return w.Write(columns)
}

// ReadStrict reads and discards the next line. The column arguments are
// never written to.
//
// It reports ErrNilReference when there are no more lines, and
// ErrIndexOutOfRange when the line has a single field or only empty
// fields. Callers loop on it until one of those errors occurs.
func (rw *ReaderWriter) ReadStrict(column1, column2 string) (bool, error) {
	r, err := rw.reader("ReadStrict")
	if err != nil {
		return false, err
	}
	record, found, err := r.TryRead()
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, fmt.Errorf("tsv: ReadStrict: %w", ErrNilReference)
	}
	if len(record) == 1 || allEmpty(record) {
		return false, fmt.Errorf("tsv: ReadStrict: index 1, %d fields: %w", len(record), ErrIndexOutOfRange)
	}
	return found, nil
}

// ReadTolerant reads the next line into column1 and column2.
//
// At end of data both columns are unset and ReadTolerant returns false
// without an error. A line with fewer than two fields leaves the missing
// columns unset. Either column may be nil when the caller does not need it.
func (rw *ReaderWriter) ReadTolerant(column1, column2 *Column) (bool, error) {
	r, err := rw.reader("ReadTolerant")
	if err != nil {
		return false, err
	}
	record, found, err := r.TryRead()
	if err != nil {
		return false, err
	}
	setColumn(column1, record, 0)
	setColumn(column2, record, 1)
	return found, nil
}

// Close releases the bound file. It may be called more than once.
func (rw *ReaderWriter) Close() error {
	if rw.stream == nil {
		return nil
	}
	return rw.stream.Close()
}

func (rw *ReaderWriter) reader(op string) (*Reader, error) {
	r, ok := rw.stream.(*Reader)
	if !ok {
		return nil, fmt.Errorf("tsv: %s: %w", op, ErrNilReference)
	}
	return r, nil
}

func setColumn(c *Column, record []string, i int) {
	if c == nil {
		return
	}
	if i >= len(record) {
		*c = Column{}
		return
	}
	*c = Column{Value: record[i], Valid: true}
}

func allEmpty(record []string) bool {
	for _, s := range record {
		if s != "" {
			return false
		}
	}
	return true
}
