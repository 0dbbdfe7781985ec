package tsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countLegacyLines loops the way callers of the older API did: until the
// read returns false or fails.
func countLegacyLines(t *testing.T, name string, tolerant bool) (int, error) {
	rw, err := OpenReaderWriter(name, ModeRead)
	require.NoError(t, err)
	defer rw.Close()

	var col1, col2 Column
	n := 0
	for {
		var ok bool
		if tolerant {
			ok, err = rw.ReadTolerant(&col1, &col2)
		} else {
			ok, err = rw.ReadStrict("", "")
		}
		if err != nil || !ok {
			return n, err
		}
		n++
	}
}

func TestReadTolerantSplit(t *testing.T) {
	rw := NewReaderWriter()
	require.NoError(t, rw.Open(testContacts, ModeRead))

	var col1, col2 Column
	ok, err := rw.ReadTolerant(&col1, &col2)
	require.NoError(t, rw.Close())

	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Column{Value: "Shelby Macias", Valid: true}, col1)
	require.Equal(t, Column{Value: "3027 Lorem St.|Kokomo|Hertfordshire|L9T 3D5|England", Valid: true}, col2)
}

func TestLegacyReadToEnd(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		tolerant bool
		want     int
		wantErr  error
	}{
		{name: "strictNoBlankEnd", file: testContactsNoBlank, want: 4, wantErr: ErrNilReference},
		{name: "strictBlankEnd", file: testContacts, want: 4, wantErr: ErrIndexOutOfRange},
		{name: "strictGap", file: testContactsGap, want: 2, wantErr: ErrIndexOutOfRange},
		{name: "strictOneCol", file: testContactsOneCol, want: 0, wantErr: ErrIndexOutOfRange},
		{name: "tolerantNoBlankEnd", file: testContactsNoBlank, tolerant: true, want: 4},
		{name: "tolerantBlankEnd", file: testContacts, tolerant: true, want: 5},
		{name: "tolerantGap", file: testContactsGap, tolerant: true, want: 5},
		{name: "tolerantOneCol", file: testContactsOneCol, tolerant: true, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := countLegacyLines(t, tt.file, tt.tolerant)
			assert.Equal(t, tt.want, n)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestReadStrictShortRecord(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{name: "oneField", content: "only\r\n"},
		{name: "blank", content: "\r\n"},
		{name: "emptyFields", content: "\t\t\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join(dir, tt.name+".tsv")
			writeFile(t, name, tt.content)

			rw, err := OpenReaderWriter(name, ModeRead)
			require.NoError(t, err)
			defer rw.Close()

			ok, err := rw.ReadStrict("ignored", "ignored")
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			require.False(t, ok)
		})
	}
}

func TestReadEndOfDataDivergence(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.tsv")
	writeFile(t, name, "")

	rw, err := OpenReaderWriter(name, ModeRead)
	require.NoError(t, err)
	defer rw.Close()

	col1 := Column{Value: "stale", Valid: true}
	col2 := Column{Value: "stale", Valid: true}
	ok, err := rw.ReadTolerant(&col1, &col2)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, Column{}, col1)
	require.Equal(t, Column{}, col2)

	ok, err = rw.ReadStrict("", "")
	require.ErrorIs(t, err, ErrNilReference)
	require.False(t, ok)
}

func TestReadTolerantShortRecord(t *testing.T) {
	name := filepath.Join(t.TempDir(), "short.tsv")
	writeFile(t, name, "one\r\n\r\n")

	rw, err := OpenReaderWriter(name, ModeRead)
	require.NoError(t, err)
	defer rw.Close()

	var col1, col2 Column
	ok, err := rw.ReadTolerant(&col1, &col2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Column{Value: "one", Valid: true}, col1)
	require.False(t, col2.Valid)
	require.Equal(t, "<unset>", col2.String())

	ok, err = rw.ReadTolerant(&col1, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Column{Value: "", Valid: true}, col1)
}

func TestLegacyWrite(t *testing.T) {
	name := filepath.Join(t.TempDir(), "output-existing.tsv")
	writeFile(t, name, "Testing\tcontent\r\n")

	rw, err := OpenReaderWriter(name, ModeWrite)
	require.NoError(t, err)
	require.NoError(t, rw.Write("testing 1-1", "testing 1-2"))
	require.NoError(t, rw.Write("testing 2-1", "testing 2-2", "testing 2-3"))
	require.NoError(t, rw.Close())

	require.Equal(t, "testing 1-1\ttesting 1-2\r\ntesting 2-1\ttesting 2-2\ttesting 2-3\r\n", readFile(t, name))
}

func TestLegacyUnknownMode(t *testing.T) {
	for _, mode := range []Mode{0, ModeRead | ModeWrite, 4} {
		_, err := OpenReaderWriter(testContacts, mode)
		require.ErrorIs(t, err, ErrUnknownMode, "mode %v", mode)
	}
}

func TestLegacyWrongDirection(t *testing.T) {
	rw := NewReaderWriter()
	_, err := rw.ReadStrict("", "")
	require.ErrorIs(t, err, ErrNilReference)
	require.ErrorIs(t, rw.Write("a"), ErrNilReference)

	require.NoError(t, rw.Open(testContacts, ModeRead))
	defer rw.Close()
	require.ErrorIs(t, rw.Write("a", "b"), ErrNilReference)

	name := filepath.Join(t.TempDir(), "output.tsv")
	require.NoError(t, rw.Open(name, ModeWrite))
	var col1, col2 Column
	_, err = rw.ReadTolerant(&col1, &col2)
	require.ErrorIs(t, err, ErrNilReference)
}

func TestLegacyClose(t *testing.T) {
	rw, err := OpenReaderWriter(testContacts, ModeRead)
	require.NoError(t, err)

	require.NoError(t, rw.Close())
	require.NoError(t, rw.Close())

	_, err = rw.ReadStrict("", "")
	require.ErrorIs(t, err, ErrClosed)

	require.NoError(t, NewReaderWriter().Close())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "read", ModeRead.String())
	assert.Equal(t, "write", ModeWrite.String())
	assert.Equal(t, "Mode(3)", (ModeRead | ModeWrite).String())
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
}
