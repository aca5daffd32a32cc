package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding an upload was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO885915   Charset = "ISO-8859-15"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// latin maps the chardet results we trust for Spanish text to a decoder.
// ISO-8859-1 is read as windows-1252, which is a superset of its printable range.
var latin = map[string]Charset{
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-15":  ISO885915,
}

var decoders = map[Charset]encoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO885915:   charmap.ISO8859_15,
}

// Reader yields the upload as UTF-8 text.
type Reader struct {
	io.Reader
	Charset Charset
}

// Decode sniffs the head of r and returns a reader producing UTF-8.
//
// A BOM wins. Otherwise valid UTF-8 passes through, chardet is asked for a
// Latin charset and anything else is read as windows-1252, which is what
// spreadsheet tools on Windows write for "CSV (delimitado por comas)".
func Decode(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return &Reader{Reader: br, Charset: UTF8}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decoded(br, UTF16LE), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decoded(br, UTF16BE), nil
	}

	if validPrefix(buf) {
		return &Reader{Reader: br, Charset: UTF8}, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if cs, ok := latin[result.Charset]; ok {
			return decoded(br, cs), nil
		}
	}

	return decoded(br, Windows1252), nil
}

func decoded(r io.Reader, cs Charset) *Reader {
	return &Reader{
		Reader:  transform.NewReader(r, decoders[cs].NewDecoder()),
		Charset: cs,
	}
}

// validPrefix reports whether buf is UTF-8, ignoring a rune cut by the peek window.
func validPrefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	if len(buf) < sniffSize {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return true
		}
	}

	return false
}
