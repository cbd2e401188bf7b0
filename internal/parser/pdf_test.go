package parser

import (
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func TestJoinRowText(t *testing.T) {
	tests := []struct {
		name string
		row  pdflib.TextHorizontal
		want string
	}{
		{
			name: "gap separated fragments get a space",
			row: pdflib.TextHorizontal{
				{S: "JOHN", X: 100, W: 30},
				{S: "(O.S.)", X: 140, W: 28},
			},
			want: "JOHN (O.S.)",
		},
		{
			name: "contiguous fragments stay joined",
			row: pdflib.TextHorizontal{
				{S: "Hel", X: 10, W: 15},
				{S: "lo", X: 25, W: 10},
			},
			want: "Hello",
		},
		{
			name: "fragment with trailing space not doubled",
			row: pdflib.TextHorizontal{
				{S: "INT. ", X: 10, W: 25},
				{S: "LAB", X: 35, W: 15},
			},
			want: "INT. LAB",
		},
		{
			name: "empty fragments skipped",
			row: pdflib.TextHorizontal{
				{S: "", X: 0, W: 0},
				{S: "FADE OUT.", X: 400, W: 45},
			},
			want: "FADE OUT.",
		},
		{name: "empty row", row: pdflib.TextHorizontal{}, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := joinRowText(tc.row); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
