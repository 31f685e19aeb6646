package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatText, true},
		{FormatYAML, true},
		{FormatJSON, true},
		{OutputFormat("invalid"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"", FormatText},
		{"text", FormatText},
		{"TREE", FormatText},
		{"yml", FormatYAML},
		{"yaml", FormatYAML},
		{"json", FormatJSON},
		{"xml", OutputFormat("xml")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputFormat(tt.input))
		})
	}
}

func TestValidFormats(t *testing.T) {
	for _, f := range ValidFormats() {
		assert.True(t, OutputFormat(f).Valid(), f)
	}
}
