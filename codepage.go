package tsv

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type cPage struct {
	page int
	cm   *charmap.Charmap
}

var cPages = []cPage{
	{page: 437, cm: charmap.CodePage437},         // US MS-DOS
	{page: 850, cm: charmap.CodePage850},         // International MS-DOS
	{page: 852, cm: charmap.CodePage852},         // Eastern European MS-DOS
	{page: 865, cm: charmap.CodePage865},         // Nordic MS-DOS
	{page: 866, cm: charmap.CodePage866},         // Russian MS-DOS
	{page: 1250, cm: charmap.Windows1250},        // Eastern European Windows
	{page: 1251, cm: charmap.Windows1251},        // Russian Windows
	{page: 1252, cm: charmap.Windows1252},        // Windows ANSI
	{page: 1253, cm: charmap.Windows1253},        // Greek Windows
	{page: 1254, cm: charmap.Windows1254},        // Turkish Windows
	{page: 1255, cm: charmap.Windows1255},        // Hebrew Windows
	{page: 1256, cm: charmap.Windows1256},        // Arabic Windows
	{page: 10000, cm: charmap.Macintosh},         // Standard Macintosh
	{page: 10007, cm: charmap.MacintoshCyrillic}, // Russian Macintosh
	{page: 28591, cm: charmap.ISO8859_1},         // Latin-1
	{page: 28595, cm: charmap.ISO8859_5},         // Cyrillic ISO
}

func charMapByPage(page int) *charmap.Charmap {
	for i := range cPages {
		if cPages[i].page == page {
			return cPages[i].cm
		}
	}
	return nil
}

// bomReader returns a transformer that consumes a leading byte order mark
// and decodes UTF-16 input when the mark says so. Input without a mark is
// passed through untouched.
func bomReader() transform.Transformer {
	return unicode.BOMOverride(transform.Nop)
}

// fromCodePage converts s from the code page of dec. ASCII input is
// returned as is because every supported page is an ASCII superset.
func fromCodePage(dec *encoding.Decoder, s string) (string, error) {
	if dec == nil || isASCII(s) {
		return s, nil
	}
	return dec.String(s)
}

func toCodePage(enc *encoding.Encoder, s string) (string, error) {
	if enc == nil || isASCII(s) {
		return s, nil
	}
	return enc.String(s)
}
