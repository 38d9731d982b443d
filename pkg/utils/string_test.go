package utils_test

import (
	"testing"

	"github.com/pracor/pracor/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestCompressWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantAll      string
		wantNewlines string
	}{
		{
			name:         "empty",
			input:        "",
			wantAll:      "",
			wantNewlines: "",
		},
		{
			name:         "multiple spaces",
			input:        "  a   b  ",
			wantAll:      "a b",
			wantNewlines: "a b",
		},
		{
			name:         "newlines",
			input:        "a  b\r\nc   d",
			wantAll:      "a b c d",
			wantNewlines: "a b\nc d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantAll, utils.CompressAllWhitespace(tt.input))
			assert.Equal(t, tt.wantNewlines, utils.CompressWhitespacePreserveNewlines(tt.input))
		})
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Warszawa", utils.TitleCase("warszawa"))
	assert.Equal(t, "Zielona Góra", utils.TitleCase("ZIELONA   góra"))
}
