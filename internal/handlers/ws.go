package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

// wsReply answers one frame. Error holds the first rejected command, if any.
type wsReply struct {
	session.Snapshot
	Error string `json:"error,omitempty"`
}

// runFrame executes the newline separated commands of one frame. It stops at
// the first error, at a quit command or when the game ends.
func runFrame(g *mines.Game, text string) (quit bool, err error) {
	for i, line := range command.Lines(text) {
		cmd, err := command.Parse(line, 0)
		if err != nil {
			return false, fmt.Errorf("line %d: %w", i+1, err)
		}
		if cmd.Kind == command.Quit {
			return true, nil
		}
		if err := command.Execute(g, cmd); err != nil {
			return false, fmt.Errorf("line %d: %w", i+1, err)
		}
		if g.Status().Over() {
			break
		}
	}
	return false, nil
}

func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithField("error", err).Warn("websocket upgrade failed")
		return
	}
	defer c.Close()

	log := h.log.WithField("game_session_id", s.ID.String())
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithField("error", err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text frames only"))
			return
		}

		text := strings.TrimSpace(string(message))
		log.WithField("frame", text).Debug("websocket frame")

		var quit bool
		snap, err := s.DoSnapshot(func(g *mines.Game) error {
			var err error
			quit, err = runFrame(g, text)
			return err
		})
		reply := wsReply{Snapshot: snap}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithField("error", err).Warn("websocket write failed")
			return
		}
		if quit {
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
