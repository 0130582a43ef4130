package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Chess", "chess"},
		{"spaces become hyphens", "Hide and Seek", "hide-and-seek"},
		{"diacritics folded", "Café Siësta", "cafe-siesta"},
		{"german umlauts", "Mensch ärgere Dich nicht", "mensch-argere-dich-nicht"},
		{"symbols stripped", "Hide & Seek!", "hide-seek"},
		{"hyphen runs collapsed", "Snakes -- and  Ladders", "snakes-and-ladders"},
		{"leading and trailing trimmed", " Tag ", "tag"},
		{"digits kept", "Uno 2", "uno-2"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.input))
		})
	}
}

func TestGenerateSlugIsDeterministic(t *testing.T) {
	first := GenerateSlug("Mühle (Nine Men's Morris)")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GenerateSlug("Mühle (Nine Men's Morris)"))
	}
}

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"board", "pieces"}, SplitTrimmed("board, pieces", ","))
	assert.Equal(t, []string{"dice"}, SplitTrimmed("  dice  ", ","))
	assert.Empty(t, SplitTrimmed("", ","))
	assert.Empty(t, SplitTrimmed(" , ,", ","))
}
