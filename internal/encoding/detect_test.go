package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/encoding"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Date,Description,Amount\n2024-03-05,Café Olé,4.75\n"),
			want:        "Date,Description,Amount\n2024-03-05,Café Olé,4.75\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Date,Amount\n"...),
			want:        "Date,Amount\n",
			wantCharset: encoding.UTF8BOM,
		},
		{
			name: "Windows1252",
			// "Caf\xe9 Ol\xe9" is "Café Olé" in Windows-1252 and Latin-5 alike.
			input: []byte("Date,Description\n2024-03-05,Caf\xe9 Ol\xe9\n"),
			want:  "Date,Description\n2024-03-05,Café Olé\n",
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'D', 0, 'a', 0, 't', 0, 'e', 0},
			want:        "Date",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, tt.want, string(got))
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestDetect_LargeInputIsNotTruncated(t *testing.T) {
	input := bytes.Repeat([]byte("2024-03-05,Grocer,12.50\n"), 1000)

	r, _, err := encoding.Detect(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
