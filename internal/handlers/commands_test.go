package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vancomm/minesweeper-pad/internal/input"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"g", command{kind: wsNoop}},
		{"r", command{kind: wsReset}},
		{"d right", command{kind: wsPress, button: input.Right}},
		{"u  Flag ", command{kind: wsRelease, button: input.Flag}},
		{"d 7", command{kind: wsPress, button: input.Start}},
		{"o 12", command{kind: wsOpen, index: 12}},
		{"f 0", command{kind: wsFlag, index: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommand(tt.line))
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		err  error
	}{
		{"", ErrUnknownCommand},
		{"c 1 2", ErrUnknownCommand},
		{"o", ErrBadArgs},
		{"r now", ErrBadArgs},
		{"o x", ErrBadIndex},
		{"d jump", input.ErrUnknownButton},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.ErrorIs(t, parseCommand(tt.line).err, tt.err)
		})
	}
}

func TestIterBySep(t *testing.T) {
	var lines []string
	for _, l := range iterBySep("d up\nu up\ng", "\n") {
		lines = append(lines, l)
	}
	assert.Equal(t, []string{"d up", "u up", "g"}, lines)
}
