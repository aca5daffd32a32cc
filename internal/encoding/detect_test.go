package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finanzas/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, err := encoding.Decode(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), r.Charset
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name    string
		input   []byte
		want    string
		charset []encoding.Charset
	}

	tests := []testCase{
		{
			name:    "UTF8Passthrough",
			input:   []byte("Fecha,Descripción,Monto\n01/06/2025,Almuerzo en Miraflores,-35.50\n"),
			want:    "Fecha,Descripción,Monto\n01/06/2025,Almuerzo en Miraflores,-35.50\n",
			charset: []encoding.Charset{encoding.UTF8},
		},
		{
			name:    "UTF8BOM",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, "Categoría;Monto\n"...),
			want:    "Categoría;Monto\n",
			charset: []encoding.Charset{encoding.UTF8},
		},
		{
			name: "UTF16LEBOM",
			input: []byte{
				0xFF, 0xFE,
				'A', 0, 0xF1, 0, 'o', 0, '\n', 0,
			},
			want:    "Año\n",
			charset: []encoding.Charset{encoding.UTF16LE},
		},
		{
			// ó = 0xF3, í = 0xED
			name: "Windows1252",
			input: []byte{
				'D', 'e', 's', 'c', 'r', 'i', 'p', 'c', 'i', 0xF3, 'n', ';',
				'C', 'a', 't', 'e', 'g', 'o', 'r', 0xED, 'a', '\n',
			},
			want:    "Descripción;Categoría\n",
			charset: []encoding.Charset{encoding.Windows1252, encoding.ISO885915},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cs := readAll(t, tt.input)

			assert.Equal(t, tt.want, got)
			assert.Contains(t, tt.charset, cs)
		})
	}
}

func TestDecode_RuneCutBySniffWindow(t *testing.T) {
	// "ñ" straddles the end of the sniffed prefix.
	input := strings.Repeat("a", 4095) + "ñ\n"

	got, cs := readAll(t, []byte(input))

	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, cs)
}

func TestDecode_Empty(t *testing.T) {
	got, cs := readAll(t, nil)

	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, cs)
}
