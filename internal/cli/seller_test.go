package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/model"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
		err  bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"120", ptr(120.0), false},
		{"$99.5", ptr(99.5), false},
		{"cheap", nil, true},
		{"NaN", nil, true},
		{"inf", nil, true},
		{"-Infinity", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, common.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCheckOption(t *testing.T) {
	assert.NoError(t, checkOption("style", "", model.Styles))
	assert.NoError(t, checkOption("style", "pop_art", model.Styles))

	err := checkOption("style", "Pop Art", model.Styles)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), `Unknown style "Pop Art"`)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		app := &App{in: strings.NewReader(tt.input), out: &out}
		app.reader = bufio.NewReader(app.in)

		got, err := app.confirm("Delete?")
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, "Delete? [y/N]: ", out.String())
	}
}
