package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"casa", "casa"},
		{"CASA", "casa"},
		{"Cafè", "cafe"},
		{"CAFÉ", "cafe"},
		{"col·laborar", "collaborar"},
		{"COL·LABORAR", "collaborar"},
		{"coŀlaborar", "collaborar"},
		{"COĿLABORAR", "collaborar"},
		{"col‧lecció", "colleccio"},
		{"a.b.c", "abc"},
		{"àéèíïóòúüç", "aeeiioouuc"},
		{"ÀÉÈÍÏÓÒÚÜÇ", "aeeiioouuc"},
		{"tenir-se", "tenir-se"},
		{"ñ", "ñ"},
		{"Ñ", "Ñ"},
		{"x1 y2", "x1 y2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Col·Laborar", "ÀÉÈÍÏÓÒÚÜÇ", "a.b", "MiXeD cAsE", "ŀĿ··..", "über", "Ñandú", "\xff\xfe",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("abc"), Normalize("ABC"))
	assert.Equal(t, Normalize("anàvem"), Normalize("ANÀVEM"))
	assert.Equal(t, Normalize("ç"), Normalize("Ç"))
}
