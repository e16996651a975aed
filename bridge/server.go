// Package bridge exposes episodes to an external trainer process over a
// WebSocket JSON request/response protocol. It is the only
// network-facing surface of the repository; the engine packages never
// import it.
package bridge

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/openracer/racetrack/common/utils"
)

type Server struct {
	addr string
}

func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
	}
}

func (server *Server) ListenAndServe() error {

	router := mux.NewRouter()
	router.Handle("/", handlers.CombinedLoggingHandler(os.Stdout,
		http.HandlerFunc(server.handleConnection),
	)).Methods("GET")

	utils.Debug("bridge", "listening on "+server.addr)

	return http.ListenAndServe(server.addr, router)
}

func (server *Server) handleConnection(w http.ResponseWriter, r *http.Request) {

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Debug("bridge", "upgrade failed: "+err.Error())
		return
	}

	session := NewSession()
	utils.DebugWithContext("bridge", "session open", utils.Context{"session": session.Id()})

	defer func() {
		session.Close()
		c.Close()
		utils.DebugWithContext("bridge", "session closed", utils.Context{"session": session.Id()})
	}()

	for {
		_, payload, err := c.ReadMessage()
		if err != nil {
			return
		}

		response, quit := handleRequest(session, payload)

		if err := c.WriteJSON(response); err != nil {
			return
		}

		if quit {
			return
		}
	}
}

// handleRequest decodes one trainer request and drives the session;
// returns the response and whether the connection should close.
func handleRequest(session *Session, payload []byte) (interface{}, bool) {

	var request Request
	if err := json.Unmarshal(payload, &request); err != nil {
		return makeError("invalid request: " + err.Error()), false
	}

	switch request.Type {
	case "reset":
		response, err := session.Reset(request.TrackId, request.Config)
		if err != nil {
			return makeError(err.Error()), false
		}
		return response, false

	case "step":
		response, err := session.Step(request.Action)
		if err != nil {
			return makeError(err.Error()), false
		}
		return response, false

	case "close":
		session.Close()
		return CloseResponse{Type: "close"}, true
	}

	return makeError("unknown request type " + request.Type), false
}
