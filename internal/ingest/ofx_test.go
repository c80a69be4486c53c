package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOFXPreprocess(t *testing.T) {
	r := NewOFXReader()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips leading blank lines",
			input: "\n\n  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
		{
			name:  "uppercases severity values",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "closes unterminated SGML tags",
			input: "<STMTTRN",
			want:  "<STMTTRN>",
		},
		{
			name:  "leaves well-formed content alone",
			input: "<TRNAMT>-160.89</TRNAMT>",
			want:  "<TRNAMT>-160.89</TRNAMT>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.preprocess(tt.input))
		})
	}
}
