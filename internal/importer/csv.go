package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/finanzas/internal/encoding"
)

// CSV reads comma, semicolon or tab separated exports in any Latin charset.
type CSV struct{}

func (CSV) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	head, err := br.Peek(2048)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(string(head))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows  [][]string
		lines []int
	)

	// The reader skips blank lines, so positions come from the reader itself.
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}

	return parseRows(rows, lines)
}

// sniffDelimiter picks the separator used most on the first lines.
func sniffDelimiter(head string) rune {
	lines := strings.SplitN(head, "\n", 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	best, bestCount := ',', 0

	for _, d := range []rune{';', '\t', ','} {
		n := 0
		for _, l := range lines {
			n += strings.Count(l, string(d))
		}

		if n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}
