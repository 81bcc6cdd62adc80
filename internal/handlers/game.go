package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var ErrBoardTooLarge = errors.New("board exceeds the size limit")

type GameHandler struct {
	log     *logrus.Logger
	store   *session.Store
	ws      *config.WebSocket
	limits  config.Limits
	newRand func() *rand.Rand
}

// NewGameHandler serves games kept in store. Every new game gets its own
// generator from newRand.
func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	ws *config.WebSocket,
	limits config.Limits,
	newRand func() *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:     log,
		store:   store,
		ws:      ws,
		limits:  limits,
		newRand: newRand,
	}
}

// moveStatus maps an engine error to a response status.
func moveStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrBlocked),
		errors.Is(err, mines.ErrRevealed),
		errors.Is(err, mines.ErrAlreadyStarted),
		errors.Is(err, command.ErrUnknown):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h GameHandler) sendMoveError(w http.ResponseWriter, err error) {
	status := moveStatus(err)
	if status == http.StatusInternalServerError {
		h.log.WithField("error", err).Error("move failed")
	}
	sendErrorOrLog(w, h.log, status, err)
}

func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreateNewGameDTO(query)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	params := dto.Params()
	if err := params.Validate(); err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if !h.limits.Allow(params) {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, fmt.Errorf(
			"%w of %dx%d", ErrBoardTooLarge, h.limits.MaxWidth, h.limits.MaxHeight,
		))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if !params.ValidatePosition(pos.X, pos.Y) {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, mines.ErrOutOfBounds)
		return
	}

	game, err := mines.NewGame(params, h.newRand())
	if err != nil {
		h.log.WithField("error", err).Error("unable to generate a new game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := game.FirstClick(pos.X, pos.Y); err != nil {
		h.log.WithField("error", err).Error("first click on a new game failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s := h.store.Create(game)
	h.log.WithFields(logrus.Fields{
		"game_session_id": s.ID.String(),
		"game":            params.String(),
	}).Debug("created game session")

	sendJSONOrLog(w, h.log, http.StatusOK, s.Snapshot())
}

func (h GameHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, s.Snapshot())
}

func (h GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseMove(query)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	kind, err := command.ParseMove(dto.Move)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	pos, err := ParsePosition(query)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := s.DoSnapshot(func(g *mines.Game) error {
		return command.Execute(g, command.Command{Kind: kind, X: pos.X, Y: pos.Y})
	})
	if err != nil {
		h.sendMoveError(w, err)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, snap)
}

func (h GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := s.DoSnapshot(func(g *mines.Game) error {
		return g.Forfeit()
	})
	if err != nil {
		h.sendMoveError(w, err)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, snap)
}
