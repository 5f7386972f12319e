package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-pad/internal/repository"
)

var (
	ErrHighScoresDisabled = errors.New("high scores are not available")
	ErrBadLimit           = errors.New("limit must not be negative")
)

type HighScoresHandler struct {
	log    logrus.FieldLogger
	scores repository.HighScoreStore
}

func NewHighScoresHandler(
	log logrus.FieldLogger, scores repository.HighScoreStore,
) *HighScoresHandler {
	return &HighScoresHandler{log: log, scores: scores}
}

func (h HighScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.scores == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, ErrHighScoresDisabled)
		return
	}

	dto, err := ParseHighScoresDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if dto.Limit < 0 {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, ErrBadLimit)
		return
	}

	filter := repository.HighScoreFilter{
		Side:      dto.Side,
		MineCount: dto.MineCount,
		Limit:     dto.Limit,
	}
	scores, err := h.scores.GetHighScores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithFields(logrus.Fields{
			"error":  err,
			"filter": filter,
		}).Error("failed to fetch highscores")
		return
	}

	sendJSONOrLog(w, h.log, scores)
}
