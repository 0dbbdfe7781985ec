package tsv

// RecordReader provides the interface for reading a single delimited record.
//
// If there is no data left to be read, Read returns (nil, io.EOF).
//
// It is implemented by Reader.
type RecordReader interface {
	Read() ([]string, error)
}

// RecordWriter provides the interface for writing a single delimited record.
//
// It is implemented by Writer.
type RecordWriter interface {
	Write(record []string) error
}

// Unmarshaler is the interface implemented by types that can unmarshal
// a single field of a record into themselves.
type Unmarshaler interface {
	UnmarshalTSV(string) error
}

// Marshaler is the interface implemented by types that can marshal themselves
// into a single field.
type Marshaler interface {
	MarshalTSV() (string, error)
}

var (
	_ RecordReader = (*Reader)(nil)
	_ RecordWriter = (*Writer)(nil)
)
