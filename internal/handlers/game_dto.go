package handlers

import (
	"net/url"
	"strings"

	"github.com/vancomm/minesweeper-pad/internal/game"
)

const anonymous = "anonymous"

type PlayDTO struct {
	Name    string `schema:"name"`
	Session string `schema:"session"`
}

func ParsePlayDTO(src url.Values) (PlayDTO, error) {
	var dto PlayDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		dto.Name = anonymous
	}
	return dto, nil
}

type HighScoresDTO struct {
	Limit     int  `schema:"limit"`
	Side      *int `schema:"side"`
	MineCount *int `schema:"mine_count"`
}

func ParseHighScoresDTO(src url.Values) (HighScoresDTO, error) {
	var dto HighScoresDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Message is written to the client after every command and after every
// tick that fired an input action.
type Message struct {
	Session  string        `json:"session"`
	Error    string        `json:"error,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}
