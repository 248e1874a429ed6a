package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"eng", "eng"},
		{"ENG", "eng"},
		{"en", "eng"},
		{" En ", "eng"},
		{"fi", "fin"},
		{"fr", "fre"},
		{"de", "ger"},
		{"fra", "fra"},
		{"fre", "fre"},
		{"ja", "jpn"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLanguage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeLanguageInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "english", "e1", "zz"} {
		_, err := NormalizeLanguage(input)
		assert.Error(t, err, "input %q", input)
	}
}
